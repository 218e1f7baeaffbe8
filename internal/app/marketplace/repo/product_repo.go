package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/models/m_product"
	"github.com/light-bringer/dealmarket-service/internal/pkg/query"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	model *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo() contracts.ProductRepository {
	return &ProductRepo{model: m_product.NewModel()}
}

func (r *ProductRepo) NextID(ctx context.Context, rd contracts.Reader) (int64, error) {
	return nextID(ctx, rd, m_product.Sequence)
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, rd contracts.Reader, id int64) (*domain.Product, error) {
	row, err := rd.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns)
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

	return productToDomain(&data), nil
}

func (r *ProductRepo) Exists(ctx context.Context, rd contracts.Reader, id int64) (bool, error) {
	return exists(ctx, rd, m_product.TableName, id)
}

// CountByBusiness counts the products listed by businessID.
func (r *ProductRepo) CountByBusiness(ctx context.Context, rd contracts.Reader, businessID int64) (int64, error) {
	n, err := count(ctx, rd, query.From(m_product.TableName).Where(query.Eq(m_product.BusinessID, businessID)))
	if err != nil {
		return 0, fmt.Errorf("failed to count products of business %d: %w", businessID, err)
	}
	return n, nil
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) *spanner.Mutation {
	return r.model.InsertMut(productToData(product))
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
func (r *ProductRepo) UpdateMut(product *domain.Product) *spanner.Mutation {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(domain.FieldMainCategory) {
		updates[m_product.MainCategory] = mainCategoryColumn(product.MainCategory())
	}
	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.Category] = string(product.Category())
	}
	if changes.Dirty(domain.FieldOriginalPrice) {
		updates[m_product.OriginalPrice] = product.OriginalPrice().Rat()
	}
	if changes.Dirty(domain.FieldNewPrice) {
		updates[m_product.NewPrice] = product.NewPrice().Rat()
	}
	if changes.Dirty(domain.FieldPercentageDiscount) {
		updates[m_product.PercentageDiscount] = product.PercentageDiscount()
	}
	if changes.Dirty(domain.FieldOfferExpirationDate) {
		updates[m_product.OfferExpirationDate] = product.OfferExpirationDate()
	}
	if changes.Dirty(domain.FieldProductImage) {
		updates[m_product.ProductImage] = product.ProductImage()
	}

	return r.model.UpdateMut(product.ID(), updates)
}

func (r *ProductRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.model.DeleteMut(id)
}

func mainCategoryColumn(m domain.MainCategory) spanner.NullString {
	if m == "" {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: string(m), Valid: true}
}

func productToData(p *domain.Product) *m_product.Data {
	return &m_product.Data{
		ID:                  p.ID(),
		Name:                p.Name(),
		MainCategory:        mainCategoryColumn(p.MainCategory()),
		Category:            string(p.Category()),
		OriginalPrice:       *p.OriginalPrice().Rat(),
		NewPrice:            *p.NewPrice().Rat(),
		PercentageDiscount:  p.PercentageDiscount(),
		OfferExpirationDate: p.OfferExpirationDate(),
		ProductImage:        p.ProductImage(),
		DatePublished:       p.DatePublished(),
		BusinessID:          p.BusinessID(),
	}
}

func productToDomain(d *m_product.Data) *domain.Product {
	var main domain.MainCategory
	if d.MainCategory.Valid {
		main = domain.MainCategory(d.MainCategory.StringVal)
	}

	return domain.ReconstructProduct(domain.ProductSnapshot{
		ID:                  d.ID,
		Name:                d.Name,
		MainCategory:        main,
		Category:            domain.Category(d.Category),
		OriginalPrice:       domain.NewMoneyFromRat(&d.OriginalPrice),
		NewPrice:            domain.NewMoneyFromRat(&d.NewPrice),
		PercentageDiscount:  d.PercentageDiscount,
		OfferExpirationDate: d.OfferExpirationDate,
		ProductImage:        d.ProductImage,
		DatePublished:       d.DatePublished,
		BusinessID:          d.BusinessID,
	})
}
