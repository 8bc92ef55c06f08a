package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/order"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

// OrderRepository persists orders and their line items. Items ride along
// via gorm associations on create; reads go through the soft-delete store
// and load items separately.
type OrderRepository struct {
	store *softdelete.Store
	db    *gorm.DB
}

func NewOrderRepository(store *softdelete.Store, db *gorm.DB) order.Repository {
	return &OrderRepository{store: store, db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	if err := r.store.Create(ctx, o); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntityOrder,
		Where:  softdelete.Where{"id": id},
	}, &o)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	if err := r.db.WithContext(ctx).Where("order_id = ?", o.ID).Find(&o.Items).Error; err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.store.FindMany(ctx, softdelete.Query{
		Entity:  softdelete.EntityOrder,
		Where:   softdelete.Where{"user_id": userID},
		OrderBy: "created_at desc",
		Limit:   limit,
		Offset:  offset,
	}, &orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	affected, err := r.store.Update(ctx, softdelete.EntityOrder, softdelete.Where{"id": id},
		map[string]any{"status": status})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("order", id)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Delete(ctx, softdelete.EntityOrder, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("order", id)
	}
	return nil
}

// TotalSpent aggregates a customer's delivered order totals.
func (r *OrderRepository) TotalSpent(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.Sum(ctx, softdelete.Query{
		Entity: softdelete.EntityOrder,
		Where: softdelete.Where{
			"user_id": userID,
			"status":  models.OrderDelivered,
		},
	}, "total_cents")
}
