package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/admin"
	"github.com/riskibarqy/school-games/internal/domain/session"
	"github.com/riskibarqy/school-games/internal/platform/id"
	"github.com/riskibarqy/school-games/internal/platform/logging"
)

const DefaultSessionTTL = 8 * time.Hour

// PasswordHasher hashes and verifies admin passwords. Compare returns nil only on a match.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthService struct {
	adminRepo   admin.Repository
	sessionRepo session.Repository
	hasher      PasswordHasher
	tokens      id.Generator
	ttl         time.Duration
	logger      *logging.Logger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	adminRepo admin.Repository,
	sessionRepo session.Repository,
	hasher PasswordHasher,
	tokens id.Generator,
	ttl time.Duration,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &AuthService{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
	}
}

// Login verifies the credentials and issues a new session token. The raw token is only
// ever returned here; the store keeps its hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (session.Issued, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Issued{}, ErrInvalidCredentials
	}

	item, exists, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return session.Issued{}, fmt.Errorf("get admin by username: %w", err)
	}
	if !exists {
		// keep the unknown-user path as slow as the wrong-password path
		_ = s.hasher.Compare(s.dummy(), password)
		s.logger.WarnContext(ctx, "admin login rejected", "username", username)
		return session.Issued{}, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(item.PasswordHash, password); err != nil {
		s.logger.WarnContext(ctx, "admin login rejected", "username", username)
		return session.Issued{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if removed, err := s.sessionRepo.DeleteExpired(ctx, now); err != nil {
		s.logger.WarnContext(ctx, "purge expired sessions failed", "error", err)
	} else if removed > 0 {
		s.logger.DebugContext(ctx, "expired sessions purged", "count", removed)
	}

	token, err := s.tokens.NewID()
	if err != nil {
		return session.Issued{}, fmt.Errorf("generate session token: %w", err)
	}

	record := session.Session{
		TokenHash: session.HashToken(token),
		AdminID:   item.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return session.Issued{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged in", "admin_id", item.ID, "expires_at", record.ExpiresAt)

	return session.Issued{
		Token:     token,
		AdminID:   item.ID,
		Username:  item.Username,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Authenticate resolves a raw session token to the admin it was issued to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (admin.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Authenticate")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return admin.Principal{}, fmt.Errorf("%w: session token is required", ErrUnauthorized)
	}

	hash := session.HashToken(token)
	record, exists, err := s.sessionRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return admin.Principal{}, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return admin.Principal{}, fmt.Errorf("%w: session not found", ErrUnauthorized)
	}
	if record.Expired(s.now().UTC()) {
		if err := s.sessionRepo.Delete(ctx, hash); err != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "error", err)
		}
		return admin.Principal{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	item, exists, err := s.adminRepo.GetByID(ctx, record.AdminID)
	if err != nil {
		return admin.Principal{}, fmt.Errorf("get admin by id: %w", err)
	}
	if !exists {
		return admin.Principal{}, fmt.Errorf("%w: admin no longer exists", ErrUnauthorized)
	}

	return admin.Principal{AdminID: item.ID, Username: item.Username}, nil
}

// Logout invalidates the session immediately. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, session.HashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// EnsureBootstrapAdmin creates the configured admin when no admin with that username exists.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.EnsureBootstrapAdmin")
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return false, fmt.Errorf("%w: bootstrap admin username, password and email are required", ErrInvalidInput)
	}

	_, exists, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("get admin by username: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash bootstrap password: %w", err)
	}

	item := admin.Admin{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.adminRepo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, admin.ErrDuplicateAdmin) {
			return false, nil
		}
		return false, fmt.Errorf("create bootstrap admin: %w", err)
	}

	s.logger.InfoContext(ctx, "bootstrap admin created", "admin_id", created.ID, "username", created.Username)
	return true, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("school-games-dummy-password")
		if err != nil {
			s.logger.Warn("build dummy password hash failed", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
