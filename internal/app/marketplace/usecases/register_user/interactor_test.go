package register_user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/fakes"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	setup := func() (*fakes.Store, *Interactor) {
		store := fakes.NewStore()
		return store, NewInteractor(store.Users(), store.Transactor(), clock.NewMockClock(now))
	}

	t.Run("registers with defaults", func(t *testing.T) {
		store, uc := setup()

		id, err := uc.Execute(ctx, &Request{Username: "alice", Email: "a@x.com", Password: "secret"})
		require.NoError(t, err)
		assert.Positive(t, id)

		user, ok := store.User(id)
		require.True(t, ok)
		assert.True(t, user.IsVerified())
		assert.Equal(t, now, user.JoinDate())
	})

	t.Run("duplicate username", func(t *testing.T) {
		store, uc := setup()
		store.SeedUser(domain.ReconstructUser(1, "alice", "first@x.com", "pw", true, now))

		_, err := uc.Execute(ctx, &Request{Username: "alice", Email: "other@x.com", Password: "pw"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, domain.FieldUsername, fe.Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store, uc := setup()
		store.SeedUser(domain.ReconstructUser(1, "alice", "a@x.com", "pw", true, now))

		_, err := uc.Execute(ctx, &Request{Username: "bob", Email: "a@x.com", Password: "pw"})
		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, domain.FieldEmail, fe.Field)
	})

	t.Run("username too long writes nothing", func(t *testing.T) {
		store, uc := setup()

		_, err := uc.Execute(ctx, &Request{Username: strings.Repeat("a", 21), Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		_, ok := store.User(1)
		assert.False(t, ok)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		store, uc := setup()
		store.CommitErr = committer.ErrConflict

		_, err := uc.Execute(ctx, &Request{Username: "alice", Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}
