package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/models"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubscriptionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
