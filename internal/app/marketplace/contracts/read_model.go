package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// UserDTO is the query-side view of a user. It never carries the password.
type UserDTO struct {
	ID         int64
	Username   string
	Email      string
	IsVerified bool
	JoinDate   time.Time
}

// BusinessDTO is the query-side view of a business.
type BusinessDTO struct {
	ID          int64
	Name        string
	City        string
	Region      string
	Description *string
	Logo        string
	OwnerID     int64
}

// ProductDTO is the query-side view of a product.
type ProductDTO struct {
	ID                  int64
	Name                string
	MainCategory        *string
	Category            string
	OriginalPrice       decimal.Decimal
	NewPrice            decimal.Decimal
	PercentageDiscount  int64
	OfferExpirationDate civil.Date
	ProductImage        string
	DatePublished       time.Time
	BusinessID          int64
}

// Page bounds a list query.
type Page struct {
	Limit  int64
	Offset int64
}

// Page size limits.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// BusinessFilter defines filtering options for listing businesses.
type BusinessFilter struct {
	OwnerID int64
	Page    Page
}

// ProductFilter defines filtering options for listing products.
// Zero values mean "no filter".
type ProductFilter struct {
	BusinessID   int64
	Category     string
	MainCategory string
	NamePrefix   string
	// MinDiscount keeps products discounted by at least this many percent.
	MinDiscount *int64
	// ActiveOn keeps offers that have not expired by this date.
	ActiveOn civil.Date
	Page     Page
}

// BusinessList is a page of businesses with the unpaginated total.
type BusinessList struct {
	Businesses []*BusinessDTO
	TotalCount int64
}

// ProductList is a page of products with the unpaginated total.
type ProductList struct {
	Products   []*ProductDTO
	TotalCount int64
}

// ReadModel defines the interface for marketplace queries.
// Read models bypass the domain layer.
type ReadModel interface {
	GetUser(ctx context.Context, id int64) (*UserDTO, error)
	GetBusiness(ctx context.Context, id int64) (*BusinessDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)

	ListBusinesses(ctx context.Context, filter *BusinessFilter) (*BusinessList, error)
	ListProducts(ctx context.Context, filter *ProductFilter) (*ProductList, error)
}
