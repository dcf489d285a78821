package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"userhub/config"
	logs "userhub/internal/infra/log"
	"userhub/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported commands are the goose ones: up, up-by-one, up-to, down, down-to, redo, reset, status, version.

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flag.Arg(0), flag.Args()[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args ...string) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "create logger")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "connect to PostgreSQL")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get PostgreSQL sql.DB")
	}
	defer func() { _ = sqlDB.Close() }()

	return postgres.Migrate(ctx, logger, sqlDB, command, args...)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate <command> [args]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  up                   Apply all pending migrations")
	fmt.Fprintln(os.Stderr, "  up-by-one            Apply the next pending migration")
	fmt.Fprintln(os.Stderr, "  up-to VERSION        Apply migrations up to VERSION")
	fmt.Fprintln(os.Stderr, "  down                 Roll back the latest migration")
	fmt.Fprintln(os.Stderr, "  down-to VERSION      Roll back to VERSION")
	fmt.Fprintln(os.Stderr, "  redo                 Re-run the latest migration")
	fmt.Fprintln(os.Stderr, "  reset                Roll back every migration")
	fmt.Fprintln(os.Stderr, "  status               Print the status of every migration")
	fmt.Fprintln(os.Stderr, "  version              Print the current schema version")
}
