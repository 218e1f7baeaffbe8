// Package committer collects Spanner mutations into a plan and applies them
// atomically.
//
// Repositories never write. They return mutations; a usecase gathers them into
// a CommitPlan and hands the plan to the Committer at the end:
//
//	err := c.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
//	    // 1. Read what the write depends on through txn
//	    // 2. Mutate aggregates
//	    // 3. Add the repository mutations to plan
//	    return nil
//	})
//
// Reads performed through txn and the buffered plan commit or abort together.
package committer

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// Storage-level failures callers translate into their own error types.
var (
	// ErrConflict reports a write rejected by a primary key or unique index.
	ErrConflict = errors.New("row conflicts with an existing key")
	// ErrBrokenReference reports a write rejected by a foreign key.
	ErrBrokenReference = errors.New("row violates a foreign key")
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds mutations to the plan. Nil mutations are ignored, so callers can
// pass the result of an UpdateMut that found nothing dirty.
func (cp *CommitPlan) Add(muts ...*spanner.Mutation) {
	for _, mut := range muts {
		if mut != nil {
			cp.mutations = append(cp.mutations, mut)
		}
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Txn is the read side of a read-write transaction.
type Txn interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	ReadRowUsingIndex(ctx context.Context, table, index string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// TxnFunc builds a plan inside a read-write transaction.
type TxnFunc func(ctx context.Context, txn Txn, plan *CommitPlan) error

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// ApplyInTransaction runs fn in a read-write transaction and buffers the plan
// it built before the transaction commits. fn may run more than once when
// Spanner aborts and retries the transaction; each attempt gets a fresh plan.
func (c *Committer) ApplyInTransaction(ctx context.Context, fn TxnFunc) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan := NewPlan()
		if err := fn(ctx, txn, plan); err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify tags storage rejections with the package sentinels while keeping
// the original error in the chain. Errors returned by callbacks pass through.
func classify(err error) error {
	switch spanner.ErrCode(err) {
	case codes.AlreadyExists:
		return errors.Join(ErrConflict, err)
	case codes.FailedPrecondition:
		if isForeignKeyViolation(err) {
			return errors.Join(ErrBrokenReference, err)
		}
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(strings.ToLower(spanner.ErrDesc(err)), "foreign key")
}
