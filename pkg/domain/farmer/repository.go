package farmer

import (
	"context"

	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/models"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, farmer *models.Farmer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Farmer, error)
	List(ctx context.Context, region string, limit, offset int) ([]models.Farmer, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}
