package sqlstore

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type OpenOptions struct {
	Driver string
	URL    string
	DBName string
	// QueryFormatter shapes the db.statement span attribute.
	QueryFormatter func(query string) string
}

// Open returns a traced sqlx handle. SQLite databases are migrated on open and limited to
// one connection so transactions never hit SQLITE_BUSY.
func Open(ctx context.Context, opts OpenOptions) (*sqlx.DB, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, crerr.New("database url is required")
	}

	traceOpts := make([]otelsql.Option, 0, 3)
	if opts.QueryFormatter != nil {
		traceOpts = append(traceOpts, otelsql.WithQueryFormatter(opts.QueryFormatter))
	}
	if opts.DBName != "" {
		traceOpts = append(traceOpts, otelsql.WithDBName(opts.DBName))
	}

	switch opts.Driver {
	case DriverPostgres:
		traceOpts = append(traceOpts, otelsql.WithDBSystem("postgresql"))
		db, err := otelsqlx.Open("postgres", opts.URL, traceOpts...)
		if err != nil {
			return nil, crerr.Wrap(err, "open postgres")
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, crerr.Wrap(err, "ping postgres")
		}
		return db, nil

	case DriverSQLite:
		traceOpts = append(traceOpts, otelsql.WithDBSystem("sqlite"))
		db, err := otelsqlx.Open("sqlite3", ensureSQLiteDSN(opts.URL), traceOpts...)
		if err != nil {
			return nil, crerr.Wrap(err, "open sqlite")
		}
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, crerr.Wrap(err, "ping sqlite")
		}
		if err := MigrateSQLite(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil

	default:
		return nil, crerr.Newf("unsupported database driver %q", opts.Driver)
	}
}

// ensureSQLiteDSN turns on foreign key enforcement and a busy timeout unless the DSN sets them.
func ensureSQLiteDSN(dsn string) string {
	dsn = appendDSNParam(dsn, "_fk", "1")
	return appendDSNParam(dsn, "_busy_timeout", "5000")
}

func appendDSNParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + key + "=" + value
	}
	return dsn + "?" + key + "=" + value
}
