package create_business

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/fakes"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakes.Store, *Interactor) {
		store := fakes.NewStore()
		store.SeedUser(domain.ReconstructUser(1, "alice", "a@x.com", "pw", true, time.Now()))
		return store, NewInteractor(store.Businesses(), store.Users(), store.Transactor())
	}

	t.Run("creates with defaults", func(t *testing.T) {
		store, uc := setup()

		id, err := uc.Execute(ctx, &Request{Name: "Acme", OwnerID: 1})
		require.NoError(t, err)

		business, ok := store.Business(id)
		require.True(t, ok)
		assert.Equal(t, domain.DefaultLocation, business.City())
		assert.Equal(t, domain.DefaultLogo, business.Logo())
		assert.Equal(t, int64(1), business.OwnerID())
	})

	t.Run("owner must exist", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(ctx, &Request{Name: "Acme", OwnerID: 42})
		assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, domain.FieldOwnerID, fe.Field)
	})

	t.Run("name is unique", func(t *testing.T) {
		store, uc := setup()
		store.SeedBusiness(domain.ReconstructBusiness(5, "Acme", "Riga", "Riga", nil, "default.jpg", 1))

		_, err := uc.Execute(ctx, &Request{Name: "Acme", OwnerID: 1})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("one owner, many businesses", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(ctx, &Request{Name: "First", OwnerID: 1})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, &Request{Name: "Second", OwnerID: 1})
		require.NoError(t, err)
	})
}
