package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/pkg/query"
)

const idColumn = "id"

func isNotFound(err error) bool {
	return spanner.ErrCode(err) == codes.NotFound
}

// nextID draws one value from a bit-reversed sequence.
func nextID(ctx context.Context, r contracts.Reader, sequence string) (int64, error) {
	stmt := spanner.Statement{SQL: fmt.Sprintf("SELECT GET_NEXT_SEQUENCE_VALUE(SEQUENCE %s)", sequence)}

	var id int64
	if err := scanSingle(ctx, r, stmt, &id); err != nil {
		return 0, fmt.Errorf("failed to draw from %s: %w", sequence, err)
	}
	return id, nil
}

// count runs a COUNT(*) built from the query builder.
func count(ctx context.Context, r contracts.Reader, b *query.Builder) (int64, error) {
	var n int64
	if err := scanSingle(ctx, r, b.Count().Build(), &n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanSingle(ctx context.Context, r contracts.Reader, stmt spanner.Statement, dest interface{}) error {
	iter := r.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return fmt.Errorf("query returned no rows: %s", stmt.SQL)
	}
	if err != nil {
		return err
	}
	return row.Column(0, dest)
}

// exists reports whether table holds a row keyed by id.
func exists(ctx context.Context, r contracts.Reader, table string, id int64) (bool, error) {
	_, err := r.ReadRow(ctx, table, spanner.Key{id}, []string{idColumn})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return true, nil
}

// taken looks value up through a unique index and reports whether a row other
// than exceptID holds it.
func taken(ctx context.Context, r contracts.Reader, table, index, value string, exceptID int64) (bool, error) {
	row, err := r.ReadRowUsingIndex(ctx, table, index, spanner.Key{value}, []string{idColumn})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s.%s: %w", table, index, err)
	}

	var holder int64
	if err := row.Column(0, &holder); err != nil {
		return false, fmt.Errorf("failed to parse %s id: %w", table, err)
	}
	return holder != exceptID, nil
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func stringPtr(ns spanner.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.StringVal
	return &v
}
