package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/school-games/internal/config"
	"github.com/riskibarqy/school-games/internal/domain/admin"
	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/session"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/school-games/internal/infrastructure/security"
	"github.com/riskibarqy/school-games/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/school-games/internal/platform/id"
	"github.com/riskibarqy/school-games/internal/platform/logging"
	"github.com/riskibarqy/school-games/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

type repositories struct {
	admins   admin.Repository
	sessions session.Repository
	teams    team.Repository
	players  player.Repository
	matches  match.Repository
	close    func() error
}

// NewHTTPServer wires storage, services and the router. The returned cleanup releases the database handle.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	authSvc := usecase.NewAuthService(
		repos.admins,
		repos.sessions,
		security.NewBcryptHasher(bcrypt.DefaultCost),
		idgen.NewRandomGenerator(),
		cfg.SessionTTL,
		logger,
	)
	created, err := authSvc.EnsureBootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	if err != nil {
		_ = repos.close()
		return nil, nil, crerr.Wrap(err, "bootstrap admin")
	}
	if created {
		logger.Info("bootstrap admin created", "username", cfg.AdminUsername)
	}

	location := cfg.FixtureLocation
	if location == nil {
		location = time.UTC
	}

	handler := httpapi.NewHandler(
		authSvc,
		usecase.NewTeamService(repos.teams, repos.players, logger),
		usecase.NewPlayerService(repos.players, repos.teams, logger),
		usecase.NewMatchService(repos.matches, repos.teams, logger),
		usecase.NewFixtureService(repos.teams, repos.matches, location, logger),
		usecase.NewDashboardService(repos.teams, repos.players, repos.matches),
		httpapi.HandlerOptions{
			Location:     location,
			CookieSecure: cfg.SessionCookieSecure,
		},
		logger,
	)
	router := httpapi.NewRouter(handler, authSvc, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.DBDriver {
	case config.DBDriverMemory:
		store := memory.NewStore()
		if err := memory.Seed(ctx, store, time.Now().UTC()); err != nil {
			return repositories{}, crerr.Wrap(err, "seed memory store")
		}
		logger.Info("using in-memory store with demo data")
		return repositories{
			admins:   store.Admins(),
			sessions: store.Sessions(),
			teams:    store.Teams(),
			players:  store.Players(),
			matches:  store.Matches(),
			close:    func() error { return nil },
		}, nil

	case config.DBDriverPostgres, config.DBDriverSQLite:
		driver := sqlstore.DriverSQLite
		if cfg.DBDriver == config.DBDriverPostgres {
			driver = sqlstore.DriverPostgres
		}
		db, err := sqlstore.Open(ctx, sqlstore.OpenOptions{
			Driver:         driver,
			URL:            normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
			DBName:         dbNameFromURL(cfg.DBURL),
			QueryFormatter: formatDBQueryForTrace,
		})
		if err != nil {
			return repositories{}, crerr.Wrapf(err, "open %s store", cfg.DBDriver)
		}
		logger.Info("database connected", "driver", cfg.DBDriver, "db_name", dbNameFromURL(cfg.DBURL))

		store := sqlstore.New(db)
		return repositories{
			admins:   store.Admins(),
			sessions: store.Sessions(),
			teams:    store.Teams(),
			players:  store.Players(),
			matches:  store.Matches(),
			close:    db.Close,
		}, nil

	default:
		return repositories{}, crerr.Newf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
