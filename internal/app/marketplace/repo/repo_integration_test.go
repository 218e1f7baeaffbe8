//go:build integration

package repo_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/repo"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
	"github.com/light-bringer/dealmarket-service/internal/pkg/testutil"
)

var testNow = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

type fixture struct {
	client     *spanner.Client
	committer  *committer.Committer
	users      contracts.UserRepository
	businesses contracts.BusinessRepository
	products   contracts.ProductRepository
}

func newFixture(t *testing.T) (*fixture, func()) {
	t.Helper()
	client, cleanup := testutil.SetupSpannerTest(t)
	return &fixture{
		client:     client,
		committer:  committer.NewCommitter(client),
		users:      repo.NewUserRepo(),
		businesses: repo.NewBusinessRepo(),
		products:   repo.NewProductRepo(),
	}, cleanup
}

func (f *fixture) createUser(t *testing.T, username string) int64 {
	t.Helper()
	var id int64
	err := f.committer.ApplyInTransaction(context.Background(), func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		next, err := f.users.NextID(ctx, txn)
		if err != nil {
			return err
		}
		u, err := domain.NewUser(next, username, username+"@example.com", "secret", testNow)
		if err != nil {
			return err
		}
		plan.Add(f.users.InsertMut(u))
		id = next
		return nil
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) createBusiness(t *testing.T, name string, ownerID int64) int64 {
	t.Helper()
	var id int64
	err := f.committer.ApplyInTransaction(context.Background(), func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		next, err := f.businesses.NextID(ctx, txn)
		if err != nil {
			return err
		}
		b, err := domain.NewBusiness(next, domain.BusinessParams{Name: name, OwnerID: ownerID})
		if err != nil {
			return err
		}
		plan.Add(f.businesses.InsertMut(b))
		id = next
		return nil
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) createProduct(t *testing.T, name string, category domain.Category, businessID int64, published time.Time) int64 {
	t.Helper()
	original, err := domain.ParseMoney("200.00")
	require.NoError(t, err)
	discounted, err := domain.ParseMoney("150.00")
	require.NoError(t, err)

	var id int64
	err = f.committer.ApplyInTransaction(context.Background(), func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		next, err := f.products.NextID(ctx, txn)
		if err != nil {
			return err
		}
		p, err := domain.NewProduct(next, domain.ProductParams{
			Name:                name,
			Category:            category,
			OriginalPrice:       original,
			NewPrice:            discounted,
			OfferExpirationDate: civil.Date{Year: 2024, Month: time.June, Day: 30},
			BusinessID:          businessID,
		}, published)
		if err != nil {
			return err
		}
		plan.Add(f.products.InsertMut(p))
		id = next
		return nil
	})
	require.NoError(t, err)
	return id
}

func TestUserRepo_InsertAndGet(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	ctx := context.Background()
	id := f.createUser(t, "alice")
	testutil.AssertRowCount(t, f.client, "users", 1)

	user, err := f.users.GetByID(ctx, f.client.Single(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username())
	assert.Equal(t, "alice@example.com", user.Email())
	assert.True(t, user.IsVerified())
	assert.True(t, testNow.Equal(user.JoinDate()))

	t.Run("missing user", func(t *testing.T) {
		_, err := f.users.GetByID(ctx, f.client.Single(), id+1)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("uniqueness probes", func(t *testing.T) {
		taken, err := f.users.UsernameTaken(ctx, f.client.Single(), "alice", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = f.users.UsernameTaken(ctx, f.client.Single(), "alice", id)
		require.NoError(t, err)
		assert.False(t, taken, "a user does not collide with itself")

		taken, err = f.users.EmailTaken(ctx, f.client.Single(), "bob@example.com", 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestUserRepo_DuplicateUsernameRejectedByIndex(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	f.createUser(t, "alice")

	err := f.committer.ApplyInTransaction(context.Background(), func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		next, err := f.users.NextID(ctx, txn)
		if err != nil {
			return err
		}
		u, err := domain.NewUser(next, "alice", "other@example.com", "secret", testNow)
		if err != nil {
			return err
		}
		plan.Add(f.users.InsertMut(u))
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, contracts.CommitError(err), domain.ErrDuplicate)
}

func TestUserRepo_UpdateWritesDirtyFields(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	ctx := context.Background()
	id := f.createUser(t, "alice")

	err := f.committer.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		u, err := f.users.GetByID(ctx, txn, id)
		if err != nil {
			return err
		}
		if err := u.SetEmail("alice@example.org"); err != nil {
			return err
		}
		u.SetVerified(false)
		plan.Add(f.users.UpdateMut(u))
		return nil
	})
	require.NoError(t, err)

	user, err := f.users.GetByID(ctx, f.client.Single(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username())
	assert.Equal(t, "alice@example.org", user.Email())
	assert.False(t, user.IsVerified())
}

func TestBusinessRepo_InsertAndCount(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	ctx := context.Background()
	owner := f.createUser(t, "alice")
	id := f.createBusiness(t, "Corner Shop", owner)
	f.createBusiness(t, "Second Shop", owner)

	b, err := f.businesses.GetByID(ctx, f.client.Single(), id)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", b.Name())
	assert.Equal(t, domain.DefaultLocation, b.City())
	assert.Equal(t, domain.DefaultLogo, b.Logo())
	assert.Nil(t, b.Description())

	n, err := f.businesses.CountByOwner(ctx, f.client.Single(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	taken, err := f.businesses.NameTaken(ctx, f.client.Single(), "Corner Shop", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestBusinessRepo_UnknownOwnerRejectedByForeignKey(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	err := f.committer.ApplyInTransaction(context.Background(), func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		b, err := domain.NewBusiness(1, domain.BusinessParams{Name: "Orphan", OwnerID: 4242})
		if err != nil {
			return err
		}
		plan.Add(f.businesses.InsertMut(b))
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, contracts.CommitError(err), domain.ErrReferenceNotFound)
}

func TestProductRepo_InsertUpdateDelete(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	ctx := context.Background()
	owner := f.createUser(t, "alice")
	shop := f.createBusiness(t, "Corner Shop", owner)
	id := f.createProduct(t, "Laptop", domain.CategoryComputers, shop, testNow)

	p, err := f.products.GetByID(ctx, f.client.Single(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.MainElectronics, p.MainCategory())
	assert.Equal(t, int64(25), p.PercentageDiscount())
	assert.Equal(t, domain.DefaultProductImage, p.ProductImage())
	assert.Equal(t, "200.00", p.OriginalPrice().String())

	err = f.committer.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		p, err := f.products.GetByID(ctx, txn, id)
		if err != nil {
			return err
		}
		half, err := domain.ParseMoney("100.00")
		if err != nil {
			return err
		}
		if err := p.SetPrices(nil, half); err != nil {
			return err
		}
		plan.Add(f.products.UpdateMut(p))
		return nil
	})
	require.NoError(t, err)

	p, err = f.products.GetByID(ctx, f.client.Single(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.PercentageDiscount())
	assert.Equal(t, "Laptop", p.Name())

	n, err := f.products.CountByBusiness(ctx, f.client.Single(), shop)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = f.committer.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		plan.Add(f.products.DeleteMut(id))
		return nil
	})
	require.NoError(t, err)
	testutil.AssertRowCount(t, f.client, "products", 0)
}
