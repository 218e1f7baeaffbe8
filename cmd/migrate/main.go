package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/dealmarket-service/internal/config"
	"github.com/light-bringer/dealmarket-service/internal/pkg/logx"
	"github.com/light-bringer/dealmarket-service/internal/pkg/migrate"
	"github.com/light-bringer/dealmarket-service/migrations"
)

var migrateDir = flag.String("migrations", "", "Directory containing migration SQL files (default: embedded)")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logx.Init(logx.Options{Environment: cfg.Environment()})

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logx.Info().Str("host", host).Msg("using Spanner emulator")
	}

	if err := run(context.Background(), cfg); err != nil {
		logx.Fatal().Err(err).Msg("migration failed")
	}
	logx.Info().Msg("migrations completed successfully")
}

func run(ctx context.Context, cfg *config.Config) error {
	target, err := cfg.SpannerTarget()
	if err != nil {
		return err
	}

	if err := migrate.EnsureInstance(ctx, target, log.Logger); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := migrate.EnsureDatabase(ctx, adminClient, target, log.Logger); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	var source fs.FS = migrations.FS
	if *migrateDir != "" {
		source = os.DirFS(*migrateDir)
	}
	ms, err := migrate.Load(source)
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		logx.Warn().Msg("no migration files found")
		return nil
	}

	return migrate.Apply(ctx, adminClient, target.DatabasePath(), ms, log.Logger)
}
