package update_product

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/fakes"
)

func money(t *testing.T, s string) *domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func ptr[T any](v T) *T { return &v }

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakes.Store, *Interactor) {
		store := fakes.NewStore()
		p, err := domain.NewProduct(1, domain.ProductParams{
			Name: "TV", Category: domain.CategoryTVAudio,
			OriginalPrice: money(t, "1000"), NewPrice: money(t, "900"),
			BusinessID: 2,
		}, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		store.SeedProduct(p)
		return store, NewInteractor(store.Products(), store.Transactor())
	}

	t.Run("price change recomputes discount", func(t *testing.T) {
		store, uc := setup(t)

		require.NoError(t, uc.Execute(ctx, &Request{ProductID: 1, NewPrice: money(t, "500")}))
		p, _ := store.Product(1)
		assert.Equal(t, int64(50), p.PercentageDiscount())
		assert.Equal(t, "1000.00", p.OriginalPrice().String())
	})

	t.Run("category change moves main category", func(t *testing.T) {
		store, uc := setup(t)

		require.NoError(t, uc.Execute(ctx, &Request{ProductID: 1, Category: ptr("Refrigerators")}))
		p, _ := store.Product(1)
		assert.Equal(t, domain.MainHouseholdAppliances, p.MainCategory())
	})

	t.Run("expiration and image", func(t *testing.T) {
		store, uc := setup(t)
		expires := civil.Date{Year: 2024, Month: time.December, Day: 31}

		require.NoError(t, uc.Execute(ctx, &Request{ProductID: 1, OfferExpirationDate: &expires, ProductImage: ptr("tv.jpg")}))
		p, _ := store.Product(1)
		assert.Equal(t, expires, p.OfferExpirationDate())
		assert.Equal(t, "tv.jpg", p.ProductImage())
	})

	t.Run("unknown category", func(t *testing.T) {
		_, uc := setup(t)
		assert.ErrorIs(t, uc.Execute(ctx, &Request{ProductID: 1, Category: ptr("Toys")}), domain.ErrEnumMismatch)
	})

	t.Run("negative price", func(t *testing.T) {
		store, uc := setup(t)

		err := uc.Execute(ctx, &Request{ProductID: 1, OriginalPrice: money(t, "-1")})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
		p, _ := store.Product(1)
		assert.Equal(t, int64(10), p.PercentageDiscount())
	})

	t.Run("missing product", func(t *testing.T) {
		_, uc := setup(t)
		assert.ErrorIs(t, uc.Execute(ctx, &Request{ProductID: 9, Name: ptr("x")}), domain.ErrProductNotFound)
	})
}
