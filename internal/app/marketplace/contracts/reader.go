package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Reader is the read surface shared by Spanner read-only and read-write
// transactions. Repositories read through it so that the same lookup can run
// inside the write transaction that depends on it.
type Reader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	ReadRowUsingIndex(ctx context.Context, table, index string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

var (
	_ Reader = (*spanner.ReadOnlyTransaction)(nil)
	_ Reader = (*spanner.ReadWriteTransaction)(nil)
)
