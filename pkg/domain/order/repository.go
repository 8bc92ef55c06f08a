package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/models"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	TotalSpent(ctx context.Context, userID uuid.UUID) (int64, error)
}
