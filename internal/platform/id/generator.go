package id

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const DefaultTokenBytes = 32

// Generator creates opaque, unguessable identifiers such as session tokens.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: DefaultTokenBytes}
}

// NewRandomGeneratorSize is NewRandomGenerator with a custom entropy size in bytes.
func NewRandomGeneratorSize(size int) *RandomGenerator {
	if size <= 0 {
		size = DefaultTokenBytes
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = DefaultTokenBytes
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
