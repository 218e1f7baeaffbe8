package get_user

import (
	"context"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
)

// Request contains the user ID to retrieve.
type Request struct {
	UserID int64
}

// Query handles the get user query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get user query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves a user by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.UserDTO, error) {
	return q.readModel.GetUser(ctx, req.UserID)
}
