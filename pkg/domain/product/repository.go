package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/models"
)

// ListFilter narrows product listings. Zero values mean "no constraint".
type ListFilter struct {
	FarmerID uuid.UUID
	Category string
	Organic  *bool
	Limit    int
	Offset   int
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetTrashed(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	ListTrashed(ctx context.Context, farmerID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID, actor string) error
	Count(ctx context.Context, filter ListFilter) (int64, error)
}
