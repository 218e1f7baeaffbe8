package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/models/m_user"
)

// UserRepo implements UserRepository for Spanner.
type UserRepo struct {
	model *m_user.Model
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo() contracts.UserRepository {
	return &UserRepo{model: m_user.NewModel()}
}

func (r *UserRepo) NextID(ctx context.Context, rd contracts.Reader) (int64, error) {
	return nextID(ctx, rd, m_user.Sequence)
}

// GetByID retrieves a user by ID, reconstructing the domain aggregate.
func (r *UserRepo) GetByID(ctx context.Context, rd contracts.Reader, id int64) (*domain.User, error) {
	row, err := rd.ReadRow(ctx, m_user.TableName, spanner.Key{id}, m_user.Columns)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var data m_user.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}

	return userToDomain(&data), nil
}

func (r *UserRepo) Exists(ctx context.Context, rd contracts.Reader, id int64) (bool, error) {
	return exists(ctx, rd, m_user.TableName, id)
}

func (r *UserRepo) UsernameTaken(ctx context.Context, rd contracts.Reader, username string, exceptID int64) (bool, error) {
	return taken(ctx, rd, m_user.TableName, m_user.UsernameIndex, username, exceptID)
}

func (r *UserRepo) EmailTaken(ctx context.Context, rd contracts.Reader, email string, exceptID int64) (bool, error) {
	return taken(ctx, rd, m_user.TableName, m_user.EmailIndex, email, exceptID)
}

// InsertMut creates a mutation for inserting a new user.
func (r *UserRepo) InsertMut(user *domain.User) *spanner.Mutation {
	return r.model.InsertMut(userToData(user))
}

// UpdateMut creates a mutation for updating a user (only dirty fields).
func (r *UserRepo) UpdateMut(user *domain.User) *spanner.Mutation {
	changes := user.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldUsername) {
		updates[m_user.Username] = user.Username()
	}
	if changes.Dirty(domain.FieldEmail) {
		updates[m_user.Email] = user.Email()
	}
	if changes.Dirty(domain.FieldPassword) {
		updates[m_user.Password] = user.Password()
	}
	if changes.Dirty(domain.FieldIsVerified) {
		updates[m_user.IsVerified] = user.IsVerified()
	}

	return r.model.UpdateMut(user.ID(), updates)
}

func (r *UserRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.model.DeleteMut(id)
}

func userToData(u *domain.User) *m_user.Data {
	return &m_user.Data{
		ID:         u.ID(),
		Username:   u.Username(),
		Email:      u.Email(),
		Password:   u.Password(),
		IsVerified: u.IsVerified(),
		JoinDate:   u.JoinDate(),
	}
}

func userToDomain(d *m_user.Data) *domain.User {
	return domain.ReconstructUser(d.ID, d.Username, d.Email, d.Password, d.IsVerified, d.JoinDate)
}
