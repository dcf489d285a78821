package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"userhub/internal/errors"
	"userhub/internal/infra/persistence/postgres/migrations"
	"userhub/internal/util"

	"github.com/pressly/goose/v3"
)

const migrationDialect = "postgres"

// gooseRunContext is swapped in tests.
var gooseRunContext = goose.RunContext

// Migrate runs a goose command ("up", "down", "status", "version", ...) against the embedded users schema.
func Migrate(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, command string, args ...string) error {
	if sqlDB == nil {
		return errors.New("migrate: nil database handle")
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(migrationDialect); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	started := time.Now()
	if err := gooseRunContext(ctx, command, sqlDB, ".", args...); err != nil {
		return errors.Wrapf(err, "goose %s failed", command)
	}

	if logger != nil {
		logger.InfoContext(ctx, "Database migration finished",
			slog.String("command", command),
			slog.String("elapsed", util.FormatDuration(time.Since(started))),
		)
	}

	return nil
}
