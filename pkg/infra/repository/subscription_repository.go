package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/subscription"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type SubscriptionRepository struct {
	store *softdelete.Store
}

func NewSubscriptionRepository(store *softdelete.Store) subscription.Repository {
	return &SubscriptionRepository{store: store}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if err := r.store.Create(ctx, sub); err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.store.FindOne(ctx, softdelete.Query{
		Entity: softdelete.EntitySubscription,
		Where:  softdelete.Where{"id": id},
	}, &sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("subscription", id)
	}
	if err != nil {
		return nil, fmt.Errorf("subscription: %w", err)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.store.FindMany(ctx, softdelete.Query{
		Entity:  softdelete.EntitySubscription,
		Where:   softdelete.Where{"user_id": userID},
		OrderBy: "created_at desc",
	}, &subs)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubscriptionStatus) error {
	affected, err := r.store.Update(ctx, softdelete.EntitySubscription, softdelete.Where{"id": id},
		map[string]any{"status": status})
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("subscription", id)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.Delete(ctx, softdelete.EntitySubscription, softdelete.Where{"id": id})
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("subscription", id)
	}
	return nil
}
