package update_user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/fakes"
)

func ptr[T any](v T) *T { return &v }

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	setup := func() (*fakes.Store, *Interactor) {
		store := fakes.NewStore()
		store.SeedUser(domain.ReconstructUser(1, "alice", "a@x.com", "pw", true, joined))
		store.SeedUser(domain.ReconstructUser(2, "bob", "b@x.com", "pw", true, joined))
		return store, NewInteractor(store.Users(), store.Transactor())
	}

	t.Run("updates given fields", func(t *testing.T) {
		store, uc := setup()

		err := uc.Execute(ctx, &Request{UserID: 1, Email: ptr("alice@x.com"), IsVerified: ptr(false)})
		require.NoError(t, err)

		user, _ := store.User(1)
		assert.Equal(t, "alice@x.com", user.Email())
		assert.False(t, user.IsVerified())
		assert.Equal(t, "alice", user.Username())
		assert.Equal(t, joined, user.JoinDate())
	})

	t.Run("keeping own username is not a duplicate", func(t *testing.T) {
		_, uc := setup()
		assert.NoError(t, uc.Execute(ctx, &Request{UserID: 1, Username: ptr("alice")}))
	})

	t.Run("taking another username", func(t *testing.T) {
		store, uc := setup()

		err := uc.Execute(ctx, &Request{UserID: 1, Username: ptr("bob")})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		user, _ := store.User(1)
		assert.Equal(t, "alice", user.Username())
	})

	t.Run("missing user", func(t *testing.T) {
		_, uc := setup()
		assert.ErrorIs(t, uc.Execute(ctx, &Request{UserID: 99, Username: ptr("x")}), domain.ErrUserNotFound)
	})
}
