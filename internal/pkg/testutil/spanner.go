// Package testutil holds helpers for tests that run against the Spanner emulator.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/config"
	"github.com/light-bringer/dealmarket-service/internal/pkg/migrate"
	"github.com/light-bringer/dealmarket-service/migrations"
)

// DefaultTestDatabase is used when SPANNER_DATABASE is unset.
const DefaultTestDatabase = "projects/test-project/instances/test-instance/databases/dealmarket-test"

var (
	schemaOnce sync.Once
	schemaErr  error
)

// SetupSpannerTest creates a test Spanner client against a migrated, empty
// database and returns a cleanup function. The test is skipped when no
// emulator is configured.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	spannerDB := GetTestSpannerDB()

	schemaOnce.Do(func() { schemaErr = prepareSchema(ctx, spannerDB) })
	require.NoError(t, schemaErr, "failed to prepare test schema")

	client, err := spanner.NewClient(ctx, spannerDB)
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_DATABASE"); db != "" {
		return db
	}
	return DefaultTestDatabase
}

func prepareSchema(ctx context.Context, spannerDB string) error {
	cfg := &config.Config{SpannerDatabase: spannerDB}
	target, err := cfg.SpannerTarget()
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if err := migrate.EnsureInstance(ctx, target, log); err != nil {
		return err
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	if err := migrate.EnsureDatabase(ctx, admin, target, log); err != nil {
		return err
	}

	ms, err := migrate.Load(migrations.FS)
	if err != nil {
		return err
	}
	return migrate.Apply(ctx, admin, target.DatabasePath(), ms, log)
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	ctx := context.Background()

	// Children first: products reference businesses, businesses reference users.
	mutations := []*spanner.Mutation{
		spanner.Delete("products", spanner.AllKeys()),
		spanner.Delete("businesses", spanner.AllKeys()),
		spanner.Delete("users", spanner.AllKeys()),
	}

	_, err := client.Apply(ctx, mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
