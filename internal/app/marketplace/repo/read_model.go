package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/models/m_business"
	"github.com/light-bringer/dealmarket-service/internal/models/m_product"
	"github.com/light-bringer/dealmarket-service/internal/models/m_user"
	"github.com/light-bringer/dealmarket-service/internal/pkg/query"
)

// userReadColumns leaves the password out of every query-side read.
var userReadColumns = []string{m_user.ID, m_user.Username, m_user.Email, m_user.IsVerified, m_user.JoinDate}

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{client: client}
}

// GetUser retrieves a user DTO by ID.
func (rm *ReadModelImpl) GetUser(ctx context.Context, id int64) (*contracts.UserDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_user.TableName, spanner.Key{id}, userReadColumns)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	dto := &contracts.UserDTO{}
	if err := row.Columns(&dto.ID, &dto.Username, &dto.Email, &dto.IsVerified, &dto.JoinDate); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return dto, nil
}

// GetBusiness retrieves a business DTO by ID.
func (rm *ReadModelImpl) GetBusiness(ctx context.Context, id int64) (*contracts.BusinessDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_business.TableName, spanner.Key{id}, m_business.Columns)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to read business: %w", err)
	}

	var data m_business.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse business: %w", err)
	}
	return businessToDTO(&data), nil
}

// GetProduct retrieves a product DTO by ID.
func (rm *ReadModelImpl) GetProduct(ctx context.Context, id int64) (*contracts.ProductDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return productToDTO(&data), nil
}

// ListBusinesses lists businesses, optionally restricted to one owner, in id order.
func (rm *ReadModelImpl) ListBusinesses(ctx context.Context, filter *contracts.BusinessFilter) (*contracts.BusinessList, error) {
	base := query.From(m_business.TableName)
	if filter.OwnerID != 0 {
		base = base.Where(query.Eq(m_business.OwnerID, filter.OwnerID))
	}

	page := filter.Page.Normalize()
	stmt := base.Select(m_business.Columns...).
		OrderBy(m_business.ID, query.Asc).
		Limit(page.Limit).
		Offset(page.Offset).
		Build()

	// One snapshot for the page and its count.
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	businesses := make([]*contracts.BusinessDTO, 0, page.Limit)
	err := forEachRow(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_business.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse business: %w", err)
		}
		businesses = append(businesses, businessToDTO(&data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	total, err := count(ctx, txn, base)
	if err != nil {
		return nil, fmt.Errorf("failed to count businesses: %w", err)
	}

	return &contracts.BusinessList{Businesses: businesses, TotalCount: total}, nil
}

// ListProducts lists products matching filter, newest first.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ProductFilter) (*contracts.ProductList, error) {
	base := query.From(m_product.TableName)
	if filter.BusinessID != 0 {
		base = base.Where(query.Eq(m_product.BusinessID, filter.BusinessID))
	}
	if filter.Category != "" {
		base = base.Where(query.Eq(m_product.Category, filter.Category))
	}
	if filter.MainCategory != "" {
		base = base.Where(query.Eq(m_product.MainCategory, filter.MainCategory))
	}
	if filter.NamePrefix != "" {
		base = base.Where(query.StartsWith(m_product.Name, filter.NamePrefix))
	}
	if filter.MinDiscount != nil {
		base = base.Where(query.Gte(m_product.PercentageDiscount, *filter.MinDiscount))
	}
	if !filter.ActiveOn.IsZero() {
		base = base.Where(query.Gte(m_product.OfferExpirationDate, filter.ActiveOn))
	}

	page := filter.Page.Normalize()
	stmt := base.Select(m_product.Columns...).
		OrderBy(m_product.DatePublished, query.Desc).
		OrderBy(m_product.ID, query.Asc).
		Limit(page.Limit).
		Offset(page.Offset).
		Build()

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	products := make([]*contracts.ProductDTO, 0, page.Limit)
	err := forEachRow(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, productToDTO(&data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := count(ctx, txn, base)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &contracts.ProductList{Products: products, TotalCount: total}, nil
}

func forEachRow(ctx context.Context, r contracts.Reader, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := r.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func businessToDTO(d *m_business.Data) *contracts.BusinessDTO {
	return &contracts.BusinessDTO{
		ID:          d.ID,
		Name:        d.Name,
		City:        d.City,
		Region:      d.Region,
		Description: stringPtr(d.Description),
		Logo:        d.Logo,
		OwnerID:     d.OwnerID,
	}
}

func productToDTO(d *m_product.Data) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ID:                  d.ID,
		Name:                d.Name,
		MainCategory:        stringPtr(d.MainCategory),
		Category:            d.Category,
		OriginalPrice:       decimal.NewFromBigRat(&d.OriginalPrice, domain.PricePlaces),
		NewPrice:            decimal.NewFromBigRat(&d.NewPrice, domain.PricePlaces),
		PercentageDiscount:  d.PercentageDiscount,
		OfferExpirationDate: d.OfferExpirationDate,
		ProductImage:        d.ProductImage,
		DatePublished:       d.DatePublished,
		BusinessID:          d.BusinessID,
	}
}
