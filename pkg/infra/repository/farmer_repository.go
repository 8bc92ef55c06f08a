package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvesthub/harvesthub/pkg/cache"
	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

const farmerKeyPattern = "farmer:%s"

type FarmerRepository struct {
	store *softdelete.Store
	cache *cache.TieredCache
}

func NewFarmerRepository(store *softdelete.Store, c *cache.TieredCache) farmer.Repository {
	return &FarmerRepository{store: store, cache: c}
}

func (r *FarmerRepository) Create(ctx context.Context, f *models.Farmer) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if err := r.store.Create(ctx, f); err != nil {
		return fmt.Errorf("create farmer: %w", err)
	}
	return nil
}

func (r *FarmerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error) {
	key := fmt.Sprintf(farmerKeyPattern, id)
	opts := cache.Options{LocalTTL: common.FarmerCacheTTL, RemoteTTL: common.FarmerCacheTTL}
	entity, err := cache.Fetch(ctx, r.cache, key, opts, func(ctx context.Context) (models.Farmer, error) {
		var f models.Farmer
		err := r.store.FindOne(ctx, softdelete.Query{
			Entity: softdelete.EntityFarmer,
			Where:  softdelete.Where{"id": id},
		}, &f)
		return f, err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("farmer", id)
		}
		return nil, fmt.Errorf("farmer: %w", err)
	}
	return &entity, nil
}

func (r *FarmerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Farmer, error) {
	var f models.Farmer
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntityFarmer,
		Where:  softdelete.Where{"user_id": userID},
	}, &f)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("farmer", userID)
		}
		return nil, fmt.Errorf("farmer by user: %w", err)
	}
	return &f, nil
}

func (r *FarmerRepository) List(ctx context.Context, region string, limit, offset int) ([]models.Farmer, error) {
	w := softdelete.Where{}
	if region != "" {
		w["region"] = region
	}
	var farmers []models.Farmer
	err := r.store.FindMany(ctx, softdelete.Query{
		Entity:  softdelete.EntityFarmer,
		Where:   w,
		OrderBy: "farm_name",
		Limit:   limit,
		Offset:  offset,
	}, &farmers)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return farmers, nil
}

func (r *FarmerRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	affected, err := r.store.Update(ctx, softdelete.EntityFarmer, softdelete.Where{"id": id}, changes)
	if err != nil {
		return fmt.Errorf("update farmer: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("farmer", id)
	}
	r.cache.Delete(ctx, fmt.Sprintf(farmerKeyPattern, id))
	return nil
}

func (r *FarmerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Delete(ctx, softdelete.EntityFarmer, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("delete farmer: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("farmer", id)
	}
	r.cache.Delete(ctx, fmt.Sprintf(farmerKeyPattern, id))
	return nil
}

func (r *FarmerRepository) Restore(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Restore(ctx, softdelete.EntityFarmer, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("restore farmer: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("farmer", id)
	}
	r.cache.Delete(ctx, fmt.Sprintf(farmerKeyPattern, id))
	return nil
}
