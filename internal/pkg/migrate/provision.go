package migrate

import (
	"context"
	"fmt"
	"os"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/dealmarket-service/internal/config"
)

// EnsureInstance creates the target instance when it is missing. Instance
// creation is only expected to succeed against the emulator.
func EnsureInstance(ctx context.Context, target config.SpannerTarget, log zerolog.Logger) error {
	log.Info().Str("instance", target.Instance).Msg("ensuring instance exists")

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: target.InstancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		log.Warn().Err(err).Msg("unexpected error checking instance")
		return nil
	}

	log.Info().Msg("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + target.Project,
		InstanceId: target.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", target.Project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		return nil
	}

	// The emulator may complete the operation immediately.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn().Err(err).Msg("instance creation did not report completion")
	}
	return nil
}

// EnsureDatabase creates the target database when it is missing.
func EnsureDatabase(ctx context.Context, admin *database.DatabaseAdminClient, target config.SpannerTarget, log zerolog.Logger) error {
	log.Info().Str("database", target.Database).Msg("ensuring database exists")

	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: target.DatabasePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Warn().Err(err).Msg("proceeding with database (emulator mode)")
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info().Msg("creating database")
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          target.InstancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", target.Database),
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create database: %w", err)
		}
		return nil
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}
