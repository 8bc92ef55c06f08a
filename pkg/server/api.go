package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	"github.com/harvesthub/harvesthub/pkg/config"
	handlers "github.com/harvesthub/harvesthub/pkg/handlers/http"
	"github.com/harvesthub/harvesthub/pkg/middleware"
)

type (
	ApiServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		VersionRouter       *apiversion.Router
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
		versionRouter       *apiversion.Router
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
		versionRouter:       di.VersionRouter,
	}
}

func (s *ApiServer) Run() error {
	s.setupMiddleware()
	s.setupRoutes()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

// setupMiddleware mounts the chain; order matters. Recovery wraps
// everything, metrics observe throttled requests too, fingerprinting feeds
// the limiter and CSRF identities, sessions resolve before CSRF so tokens
// bind to user ids, version resolution runs last so rejected requests
// never reach handlers.
func (s *ApiServer) setupMiddleware() {
	mt := s.middlewareTransport
	s.Router.Use(mt.PanicRecoverMiddleware.Middleware())
	s.Router.Use(mt.MetricsMiddleware.Middleware())
	s.Router.Use(mt.FingerprintMiddleware.Middleware())
	s.Router.Use(mt.RateLimitMiddleware.Middleware())
	s.Router.Use(mt.SessionMiddleware.Middleware())
	s.Router.Use(mt.CsrfMiddleware.Middleware())
	s.Router.Use(s.versionRouter.Middleware())
}

func (s *ApiServer) setupRoutes() {
	s.Router.Get("/health", s.handlerTransport.HealthHandler.Handle)

	// The same surface is mounted under both path versions; handlers that
	// changed shape between versions dispatch internally.
	s.addRoutes(s.Router.Group("/api/v1"))
	s.addRoutes(s.Router.Group("/api/v2"))
}

func (s *ApiServer) addRoutes(router fiber.Router) {
	ht := s.handlerTransport

	router.Get("/version", ht.GetVersionHandler.Handle)
	router.Get("/csrf-token", ht.CsrfTokenHandler.Handle)

	products := router.Group("/products")
	{
		products.Post("", ht.CreateProductHandler.Handle)
		products.Get("", ht.ListProductsHandler.Handle)
		products.Get("/trash", ht.ListTrashedProductsHandler.Handle)
		products.Get("/:product_id", ht.GetProductHandler.Handle)
		products.Put("/:product_id", ht.UpdateProductHandler.Handle)
		products.Delete("/:product_id", ht.DeleteProductHandler.Handle)
		products.Post("/:product_id/restore", ht.RestoreProductHandler.Handle)
	}

	farmers := router.Group("/farmers")
	{
		farmers.Post("", ht.CreateFarmerHandler.Handle)
		farmers.Get("", ht.ListFarmersHandler.Handle)
		farmers.Get("/:farmer_id", ht.GetFarmerHandler.Handle)
		farmers.Put("/:farmer_id", ht.UpdateFarmerHandler.Handle)
		farmers.Delete("/:farmer_id", ht.DeleteFarmerHandler.Handle)
	}

	orders := router.Group("/orders")
	{
		orders.Post("", ht.CreateOrderHandler.Handle)
		orders.Get("", ht.ListOrdersHandler.Handle)
		orders.Get("/:order_id", ht.GetOrderHandler.Handle)
		orders.Post("/:order_id/cancel", ht.CancelOrderHandler.Handle)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.Post("", ht.CreateSubscriptionHandler.Handle)
		subscriptions.Get("", ht.ListSubscriptionsHandler.Handle)
		subscriptions.Post("/:subscription_id/cancel", ht.CancelSubscriptionHandler.Handle)
	}

	users := router.Group("/users")
	{
		users.Get("/me", ht.GetMeHandler.Handle)
		users.Put("/me", ht.UpdateMeHandler.Handle)
		users.Delete("/me", ht.DeleteMeHandler.Handle)
	}

	admin := router.Group("/admin")
	{
		admin.Delete("/products/:product_id", ht.HardDeleteProductHandler.Handle)
		admin.Post("/purge", ht.PurgeTrashHandler.Handle)
	}
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
