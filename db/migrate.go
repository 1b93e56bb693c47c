// Package db carries the Postgres schema migrations, embedded for the API
// and the migrator.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EmbeddedDir is the embedded migration directory.
const EmbeddedDir = "migrations"

// Migration commands accepted by Migrate.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Migrate runs a goose command against sqlDB. An empty dir uses the
// embedded migrations; otherwise dir is read from disk.
func Migrate(ctx context.Context, sqlDB *sql.DB, command, dir string) error {
	if dir == "" {
		goose.SetBaseFS(migrations)
		dir = EmbeddedDir
	} else {
		goose.SetBaseFS(nil)
	}
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, sqlDB, dir)
	case CommandDown:
		return goose.DownContext(ctx, sqlDB, dir)
	case CommandStatus:
		return goose.StatusContext(ctx, sqlDB, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
