package list_products

import (
	"context"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
)

// Request contains filtering and pagination parameters. Empty values do not filter.
type Request struct {
	BusinessID   int64
	Category     string
	MainCategory string
	NamePrefix   string
	MinDiscount  *int64
	// ActiveOnly drops offers that expired before today.
	ActiveOnly bool
	Limit      int64
	Offset     int64
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
	clock     clock.Clock
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel, clock clock.Clock) *Query {
	return &Query{readModel: readModel, clock: clock}
}

// Execute lists products, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductList, error) {
	// Category filters outside the fixed sets are errors, not empty pages.
	if req.Category != "" {
		if _, err := domain.ParseCategory(req.Category); err != nil {
			return nil, err
		}
	}
	if req.MainCategory != "" {
		if _, err := domain.ParseMainCategory(req.MainCategory); err != nil {
			return nil, err
		}
	}
	if req.BusinessID != 0 {
		if _, err := q.readModel.GetBusiness(ctx, req.BusinessID); err != nil {
			return nil, err
		}
	}

	filter := &contracts.ProductFilter{
		BusinessID:   req.BusinessID,
		Category:     req.Category,
		MainCategory: req.MainCategory,
		NamePrefix:   req.NamePrefix,
		MinDiscount:  req.MinDiscount,
		Page:         contracts.Page{Limit: req.Limit, Offset: req.Offset},
	}
	if req.ActiveOnly {
		filter.ActiveOn = clock.Today(q.clock)
	}

	return q.readModel.ListProducts(ctx, filter)
}
