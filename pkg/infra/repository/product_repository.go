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
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

const (
	productKeyPattern  = "product:%s"
	productInvalidated = "product:*"
)

// ProductRepository reads and writes products through the soft-delete
// store, with single-product reads accelerated by the tiered cache. Writes
// invalidate the product keyspace.
type ProductRepository struct {
	store *softdelete.Store
	cache *cache.TieredCache
}

func NewProductRepository(store *softdelete.Store, c *cache.TieredCache) product.Repository {
	return &ProductRepository{store: store, cache: c}
}

func (r *ProductRepository) cacheOpts() cache.Options {
	return cache.Options{
		LocalTTL:  common.ProductCacheTTL,
		RemoteTTL: common.ProductCacheTTL,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := r.store.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	r.cache.Invalidate(ctx, productInvalidated)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf(productKeyPattern, id)
	entity, err := cache.Fetch(ctx, r.cache, key, r.cacheOpts(), func(ctx context.Context) (models.Product, error) {
		var p models.Product
		err := r.store.FindOne(ctx, softdelete.Query{
			Entity: softdelete.EntityProduct,
			Where:  softdelete.Where{"id": id},
		}, &p)
		return p, err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound(id)
		}
		return nil, fmt.Errorf("product: %w", err)
	}
	return &entity, nil
}

// GetTrashed reads a single soft-deleted product through the explicit
// trash override, skipping the cache so trash state is never stale.
func (r *ProductRepository) GetTrashed(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntityProduct,
		Where: softdelete.Where{
			"id":         id,
			"deleted_at": softdelete.NotNull,
		},
	}, &p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("trashed product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter product.ListFilter) ([]models.Product, error) {
	var products []models.Product
	err := r.store.FindMany(ctx, softdelete.Query{
		Entity:  softdelete.EntityProduct,
		Where:   listWhere(filter),
		OrderBy: "created_at desc",
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, &products)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListTrashed returns a farmer's soft-deleted products via the explicit
// trash override.
func (r *ProductRepository) ListTrashed(ctx context.Context, farmerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.store.FindMany(ctx, softdelete.Query{
		Entity: softdelete.EntityProduct,
		Where: softdelete.Where{
			"farmer_id":  farmerID,
			"deleted_at": softdelete.NotNull,
		},
		OrderBy: "created_at desc",
	}, &products)
	if err != nil {
		return nil, fmt.Errorf("list trashed products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	affected, err := r.store.Update(ctx, softdelete.EntityProduct, softdelete.Where{"id": id}, changes)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return r.notFound(id)
	}
	r.invalidateOne(ctx, id)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Delete(ctx, softdelete.EntityProduct, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return r.notFound(id)
	}
	r.invalidateOne(ctx, id)
	return nil
}

func (r *ProductRepository) Restore(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Restore(ctx, softdelete.EntityProduct, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	if affected == 0 {
		return r.notFound(id)
	}
	r.invalidateOne(ctx, id)
	return nil
}

func (r *ProductRepository) HardDelete(ctx context.Context, id uuid.UUID, actor string) error {
	affected, err := r.store.HardDelete(ctx, softdelete.EntityProduct, softdelete.Where{"id": id}, actor)
	if err != nil {
		return fmt.Errorf("hard delete product: %w", err)
	}
	if affected == 0 {
		return r.notFound(id)
	}
	r.invalidateOne(ctx, id)
	return nil
}

func (r *ProductRepository) Count(ctx context.Context, filter product.ListFilter) (int64, error) {
	return r.store.Count(ctx, softdelete.Query{
		Entity: softdelete.EntityProduct,
		Where:  listWhere(filter),
	})
}

func (r *ProductRepository) notFound(id uuid.UUID) error {
	return domain.NewNotFoundError("product", id)
}

func (r *ProductRepository) invalidateOne(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, fmt.Sprintf(productKeyPattern, id))
}

func listWhere(filter product.ListFilter) softdelete.Where {
	w := softdelete.Where{}
	if filter.FarmerID != uuid.Nil {
		w["farmer_id"] = filter.FarmerID
	}
	if filter.Category != "" {
		w["category"] = filter.Category
	}
	if filter.Organic != nil {
		w["organic"] = *filter.Organic
	}
	return w
}
