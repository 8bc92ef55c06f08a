package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Operational
	HealthHandler     Handler
	GetVersionHandler Handler
	CsrfTokenHandler  Handler
	PurgeTrashHandler Handler

	// Product
	CreateProductHandler       Handler
	ListProductsHandler        Handler
	GetProductHandler          Handler
	UpdateProductHandler       Handler
	DeleteProductHandler       Handler
	RestoreProductHandler      Handler
	ListTrashedProductsHandler Handler
	HardDeleteProductHandler   Handler

	// Farmer
	CreateFarmerHandler Handler
	ListFarmersHandler  Handler
	GetFarmerHandler    Handler
	UpdateFarmerHandler Handler
	DeleteFarmerHandler Handler

	// Order
	CreateOrderHandler Handler
	ListOrdersHandler  Handler
	GetOrderHandler    Handler
	CancelOrderHandler Handler

	// Subscription
	CreateSubscriptionHandler Handler
	ListSubscriptionsHandler  Handler
	CancelSubscriptionHandler Handler

	// User
	GetMeHandler    Handler
	UpdateMeHandler Handler
	DeleteMeHandler Handler
}
