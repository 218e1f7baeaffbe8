package delete_product

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
	store := fakes.NewStore()

	price, err := domain.ParseMoney("5")
	require.NoError(t, err)
	p, err := domain.NewProduct(1, domain.ProductParams{
		Name: "Bike", Category: domain.CategoryMotorcycles,
		OriginalPrice: price, NewPrice: price, BusinessID: 1,
	}, time.Now())
	require.NoError(t, err)
	store.SeedProduct(p)

	uc := NewInteractor(store.Products(), store.Transactor())

	require.NoError(t, uc.Execute(ctx, &Request{ProductID: 1}))
	_, ok := store.Product(1)
	assert.False(t, ok)

	assert.ErrorIs(t, uc.Execute(ctx, &Request{ProductID: 1}), domain.ErrProductNotFound)
}
