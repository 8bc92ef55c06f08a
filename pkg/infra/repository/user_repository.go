package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/user"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type UserRepository struct {
	store *softdelete.Store
}

func NewUserRepository(store *softdelete.Store) user.Repository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := r.store.Create(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntityUser,
		Where:  softdelete.Where{"id": id},
	}, &u)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntityUser,
		Where:  softdelete.Where{"email": email},
	}, &u)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", uuid.Nil)
		}
		return nil, fmt.Errorf("user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	affected, err := r.store.Update(ctx, softdelete.EntityUser, softdelete.Where{"id": id}, changes)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("user", id)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Delete(ctx, softdelete.EntityUser, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("user", id)
	}
	return nil
}
