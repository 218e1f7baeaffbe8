package list_businesses

import (
	"context"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	OwnerID int64 // 0 = every owner
	Limit   int64
	Offset  int64
}

// Query handles the list businesses query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list businesses query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists businesses. Filtering by an owner that does not exist is
// reported as domain.ErrUserNotFound rather than as an empty page.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.BusinessList, error) {
	if req.OwnerID != 0 {
		if _, err := q.readModel.GetUser(ctx, req.OwnerID); err != nil {
			return nil, err
		}
	}

	return q.readModel.ListBusinesses(ctx, &contracts.BusinessFilter{
		OwnerID: req.OwnerID,
		Page:    contracts.Page{Limit: req.Limit, Offset: req.Offset},
	})
}
