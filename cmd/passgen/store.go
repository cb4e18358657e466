package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/and161185/passgen/internal/config"
	"github.com/and161185/passgen/internal/migrate"
	"github.com/and161185/passgen/internal/repository"
	"github.com/and161185/passgen/internal/repository/postgres"
	"github.com/and161185/passgen/internal/repository/sqlite"
)

// store bundles the repositories of one opened backend.
type store struct {
	accounts  repository.AccountRepository
	passwords repository.PasswordRepository
	close     func()
}

// openStore migrates and opens the backend named by cfg.Driver.
func openStore(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, fmt.Errorf("store dir: %w", err)
		}
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := migrate.Up(ctx, db.SQL, goose.DialectSQLite3, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &store{
			accounts:  sqlite.NewAccountRepo(db),
			passwords: sqlite.NewPasswordRepo(db),
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn("close store", zap.Error(err))
				}
			},
		}, nil

	case config.DriverPostgres:
		if err := migrate.UpPostgres(ctx, cfg.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		return &store{
			accounts:  postgres.NewAccountRepo(db),
			passwords: postgres.NewPasswordRepo(db),
			close:     db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
