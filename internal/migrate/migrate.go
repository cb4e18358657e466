// Package migrate applies embedded SQL migrations on startup.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/and161185/passgen/migrations"
)

// Up runs all pending migrations for dialect on an open database.
// Dialect is goose.DialectSQLite3 or goose.DialectPostgres.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, log *zap.Logger) error {
	dir, err := dirFor(dialect)
	if err != nil {
		return err
	}
	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := p.Up(ctx)
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		log.Info("migration applied",
			zap.String("dialect", string(dialect)),
			zap.Int64("version", r.Source.Version),
			zap.Duration("dur", r.Duration),
		)
	}
	return err
}

// UpPostgres opens dsn through the pgx stdlib driver and migrates it.
func UpPostgres(ctx context.Context, dsn string, log *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return Up(ctx, db, goose.DialectPostgres, log)
}

func dirFor(dialect goose.Dialect) (string, error) {
	switch dialect {
	case goose.DialectSQLite3:
		return migrations.SQLiteDir, nil
	case goose.DialectPostgres:
		return migrations.PostgresDir, nil
	default:
		return "", fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}
}
