package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/models/m_business"
	"github.com/light-bringer/dealmarket-service/internal/pkg/query"
)

// BusinessRepo implements BusinessRepository for Spanner.
type BusinessRepo struct {
	model *m_business.Model
}

// NewBusinessRepo creates a new BusinessRepo.
func NewBusinessRepo() contracts.BusinessRepository {
	return &BusinessRepo{model: m_business.NewModel()}
}

func (r *BusinessRepo) NextID(ctx context.Context, rd contracts.Reader) (int64, error) {
	return nextID(ctx, rd, m_business.Sequence)
}

// GetByID retrieves a business by ID, reconstructing the domain aggregate.
func (r *BusinessRepo) GetByID(ctx context.Context, rd contracts.Reader, id int64) (*domain.Business, error) {
	row, err := rd.ReadRow(ctx, m_business.TableName, spanner.Key{id}, m_business.Columns)
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

	return businessToDomain(&data), nil
}

func (r *BusinessRepo) Exists(ctx context.Context, rd contracts.Reader, id int64) (bool, error) {
	return exists(ctx, rd, m_business.TableName, id)
}

func (r *BusinessRepo) NameTaken(ctx context.Context, rd contracts.Reader, name string, exceptID int64) (bool, error) {
	return taken(ctx, rd, m_business.TableName, m_business.NameIndex, name, exceptID)
}

// CountByOwner counts the businesses owned by ownerID.
func (r *BusinessRepo) CountByOwner(ctx context.Context, rd contracts.Reader, ownerID int64) (int64, error) {
	n, err := count(ctx, rd, query.From(m_business.TableName).Where(query.Eq(m_business.OwnerID, ownerID)))
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses of user %d: %w", ownerID, err)
	}
	return n, nil
}

// InsertMut creates a mutation for inserting a new business.
func (r *BusinessRepo) InsertMut(business *domain.Business) *spanner.Mutation {
	return r.model.InsertMut(businessToData(business))
}

// UpdateMut creates a mutation for updating a business (only dirty fields).
// The owner is fixed at creation and never updated.
func (r *BusinessRepo) UpdateMut(business *domain.Business) *spanner.Mutation {
	changes := business.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldBusinessName) {
		updates[m_business.Name] = business.Name()
	}
	if changes.Dirty(domain.FieldCity) {
		updates[m_business.City] = business.City()
	}
	if changes.Dirty(domain.FieldRegion) {
		updates[m_business.Region] = business.Region()
	}
	if changes.Dirty(domain.FieldBusinessDescription) {
		updates[m_business.Description] = nullString(business.Description())
	}
	if changes.Dirty(domain.FieldLogo) {
		updates[m_business.Logo] = business.Logo()
	}

	return r.model.UpdateMut(business.ID(), updates)
}

func (r *BusinessRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.model.DeleteMut(id)
}

func businessToData(b *domain.Business) *m_business.Data {
	return &m_business.Data{
		ID:          b.ID(),
		Name:        b.Name(),
		City:        b.City(),
		Region:      b.Region(),
		Description: nullString(b.Description()),
		Logo:        b.Logo(),
		OwnerID:     b.OwnerID(),
	}
}

func businessToDomain(d *m_business.Data) *domain.Business {
	return domain.ReconstructBusiness(d.ID, d.Name, d.City, d.Region, stringPtr(d.Description), d.Logo, d.OwnerID)
}
