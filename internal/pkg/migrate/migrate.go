// Package migrate applies Spanner DDL files to a database, skipping objects
// the database already has.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/rs/zerolog"
)

// Migration is one DDL file split into statements.
type Migration struct {
	Name       string
	Statements []string
}

// Load reads every *.sql file at the root of fsys, ordered by name.
func Load(fsys fs.FS) ([]Migration, error) {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		migrations = append(migrations, Migration{
			Name:       path.Base(file),
			Statements: SplitStatements(string(content)),
		})
	}
	return migrations, nil
}

// SplitStatements drops comment lines and splits content on semicolons.
func SplitStatements(content string) []string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// ObjectKey identifies the schema object a CREATE statement defines, such as
// "TABLE users" or "INDEX users_by_email". Other statements have no key.
func ObjectKey(stmt string) string {
	tokens := strings.Fields(stmt)
	if len(tokens) < 3 || !strings.EqualFold(tokens[0], "CREATE") {
		return ""
	}

	i := 1
	for i < len(tokens) && (strings.EqualFold(tokens[i], "UNIQUE") || strings.EqualFold(tokens[i], "NULL_FILTERED")) {
		i++
	}
	if i+1 >= len(tokens) {
		return ""
	}

	name := tokens[i+1]
	if cut := strings.IndexAny(name, "( "); cut >= 0 {
		name = name[:cut]
	}
	return strings.ToUpper(tokens[i]) + " " + strings.Trim(name, "`")
}

// Pending returns the statements whose objects are not defined by existing.
// Statements without an object key are always pending.
func Pending(existing, statements []string) []string {
	defined := make(map[string]bool, len(existing))
	for _, stmt := range existing {
		if key := ObjectKey(stmt); key != "" {
			defined[key] = true
		}
	}

	pending := make([]string, 0, len(statements))
	for _, stmt := range statements {
		if key := ObjectKey(stmt); key != "" && defined[key] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}

// Apply runs the pending statements of every migration against dbPath.
func Apply(ctx context.Context, admin *database.DatabaseAdminClient, dbPath string, migrations []Migration, log zerolog.Logger) error {
	ddl, err := admin.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: dbPath})
	if err != nil {
		return fmt.Errorf("failed to read current schema: %w", err)
	}
	existing := ddl.GetStatements()

	for _, m := range migrations {
		pending := Pending(existing, m.Statements)
		if len(pending) == 0 {
			log.Info().Str("migration", m.Name).Msg("already applied")
			continue
		}

		log.Info().Str("migration", m.Name).Int("statements", len(pending)).Msg("applying")
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   dbPath,
			Statements: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", m.Name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", m.Name, err)
		}

		existing = append(existing, pending...)
	}
	return nil
}
