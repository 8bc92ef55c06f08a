package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// DeletedAt is a plain nullable timestamp rather than gorm.DeletedAt: the
// soft-delete interceptor owns delete rewriting and read filtering, so the
// ORM's built-in scoping must stay out of the way.
type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"size:255;not null"`
	Role      Role       `json:"role" gorm:"size:20;not null;default:customer"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (User) TableName() string { return "users" }

type Farmer struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	FarmName  string     `json:"farm_name" gorm:"size:255;not null"`
	Region    string     `json:"region" gorm:"size:100;index"`
	Bio       string     `json:"bio" gorm:"type:text"`
	Certified bool       `json:"certified" gorm:"default:false"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Farmer) TableName() string { return "farmers" }

type Product struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FarmerID   uuid.UUID  `json:"farmer_id" gorm:"type:uuid;index;not null"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	Category   string     `json:"category" gorm:"size:100;index"`
	PriceCents int64      `json:"price_cents" gorm:"not null"`
	Unit       string     `json:"unit" gorm:"size:50;not null"`
	Stock      int        `json:"stock" gorm:"not null;default:0"`
	Organic    bool       `json:"organic" gorm:"default:false"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID   `json:"user_id" gorm:"type:uuid;index;not null"`
	Status     OrderStatus `json:"status" gorm:"size:20;not null;default:pending"`
	TotalCents int64       `json:"total_cents" gorm:"not null"`
	Items      []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DeletedAt  *time.Time  `json:"deleted_at,omitempty" gorm:"index"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;index;not null"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	UnitPriceCents int64     `json:"unit_price_cents" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

type Subscription struct {
	ID             uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID          `json:"user_id" gorm:"type:uuid;index;not null"`
	FarmerID       uuid.UUID          `json:"farmer_id" gorm:"type:uuid;index;not null"`
	Cadence        Cadence            `json:"cadence" gorm:"size:20;not null"`
	Status         SubscriptionStatus `json:"status" gorm:"size:20;not null;default:active"`
	NextDeliveryAt time.Time          `json:"next_delivery_at"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      *time.Time         `json:"deleted_at,omitempty" gorm:"index"`
}

func (Subscription) TableName() string { return "subscriptions" }
