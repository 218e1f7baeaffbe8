package committer

import (
	"errors"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty(), "nil mutations are ignored")

	plan.Add(spanner.Delete("users", spanner.Key{int64(1)}), nil, spanner.Delete("users", spanner.Key{int64(2)}))
	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestClassify(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		err := classify(status.Error(codes.AlreadyExists, "Unique index violation on index users_by_username"))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := classify(status.Error(codes.FailedPrecondition, "Foreign key constraint `fk_businesses_owner` is violated"))
		assert.ErrorIs(t, err, ErrBrokenReference)
	})

	t.Run("other precondition", func(t *testing.T) {
		err := classify(status.Error(codes.FailedPrecondition, "schema change in progress"))
		assert.NotErrorIs(t, err, ErrBrokenReference)
	})

	t.Run("callback errors pass through", func(t *testing.T) {
		sentinel := errors.New("not found")
		assert.Same(t, sentinel, classify(sentinel))
	})
}
