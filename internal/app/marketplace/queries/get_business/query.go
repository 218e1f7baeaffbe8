package get_business

import (
	"context"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
)

// Request contains the business ID to retrieve.
type Request struct {
	BusinessID int64
}

// Query handles the get business query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get business query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves a business by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.BusinessDTO, error) {
	return q.readModel.GetBusiness(ctx, req.BusinessID)
}
