package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/list_businesses"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/list_products"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/repo"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/register_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_user"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
	"github.com/light-bringer/dealmarket-service/internal/transport/http/marketplace"
)

// Storage bundles the ports the application layer depends on.
type Storage struct {
	Users      contracts.UserRepository
	Businesses contracts.BusinessRepository
	Products   contracts.ProductRepository
	ReadModel  contracts.ReadModel
	Transactor contracts.Transactor
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient      *spanner.Client
	MarketplaceHandler *marketplace.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create repositories and the committer
	storage := Storage{
		Users:      repo.NewUserRepo(),
		Businesses: repo.NewBusinessRepo(),
		Products:   repo.NewProductRepo(),
		ReadModel:  repo.NewReadModel(spannerClient),
		Transactor: committer.NewCommitter(spannerClient),
	}

	return &ServiceOptions{
		SpannerClient:      spannerClient,
		MarketplaceHandler: NewMarketplaceHandler(storage, clock.NewRealClock()),
	}, nil
}

// NewMarketplaceHandler builds the use cases and queries over storage and
// returns the HTTP handler delegating to them.
func NewMarketplaceHandler(s Storage, clk clock.Clock) *marketplace.Handler {
	// Commands (write operations)
	registerUser := register_user.NewInteractor(s.Users, s.Transactor, clk)
	updateUser := update_user.NewInteractor(s.Users, s.Transactor)
	deleteUser := delete_user.NewInteractor(s.Users, s.Businesses, s.Transactor)
	createBusiness := create_business.NewInteractor(s.Businesses, s.Users, s.Transactor)
	updateBusiness := update_business.NewInteractor(s.Businesses, s.Transactor)
	deleteBusiness := delete_business.NewInteractor(s.Businesses, s.Products, s.Transactor)
	createProduct := create_product.NewInteractor(s.Products, s.Businesses, s.Transactor, clk)
	updateProduct := update_product.NewInteractor(s.Products, s.Transactor)
	deleteProduct := delete_product.NewInteractor(s.Products, s.Transactor)

	// Queries (read operations)
	getUser := get_user.NewQuery(s.ReadModel)
	getBusiness := get_business.NewQuery(s.ReadModel)
	listBusinesses := list_businesses.NewQuery(s.ReadModel)
	getProduct := get_product.NewQuery(s.ReadModel)
	listProducts := list_products.NewQuery(s.ReadModel, clk)

	return marketplace.NewHandler(
		registerUser,
		updateUser,
		deleteUser,
		createBusiness,
		updateBusiness,
		deleteBusiness,
		createProduct,
		updateProduct,
		deleteProduct,
		getUser,
		getBusiness,
		listBusinesses,
		getProduct,
		listProducts,
	)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
