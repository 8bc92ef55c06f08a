package database

import (
	"gorm.io/gorm"

	"github.com/harvesthub/harvesthub/pkg/models"
)

// MigrationsManager applies schema migrations on startup.
type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

func (m *MigrationsManager) Migrate() error {
	return m.db.AutoMigrate(
		&models.User{},
		&models.Farmer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subscription{},
	)
}
