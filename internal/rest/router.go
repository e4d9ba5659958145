// Package rest assembles the gin engine: middleware, routes and their role
// requirements.
package rest

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/roomledger/roomledger/internal/api/v1"
	"github.com/roomledger/roomledger/internal/auth"
	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/domain/user"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/rest/middleware"
	"github.com/roomledger/roomledger/internal/types"
)

// Handlers bundles every versioned handler for route registration.
type Handlers struct {
	Billing     *v1.BillingHandler
	Room        *v1.RoomHandler
	Reading     *v1.ReadingHandler
	Resident    *v1.ResidentHandler
	Maintenance *v1.MaintenanceHandler
	Shop        *v1.ShopHandler
	User        *v1.UserHandler
}

// NewRouter wires middleware and routes into a ready-to-serve engine.
func NewRouter(cfg *config.Configuration, log *logger.Logger, provider auth.Provider, userRepo user.Repository, handlers Handlers) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(),
	)

	router.GET("/health", v1.Health)

	public := router.Group("/v1")
	{
		public.POST("/auth/signup", handlers.User.SignUp)
		public.POST("/auth/login", handlers.User.Login)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthMiddleware(cfg, provider, userRepo, log))
	{
		rooms := private.Group("/rooms")
		{
			rooms.GET("", handlers.Room.ListRooms)
			rooms.GET("/:id", handlers.Room.GetRoom)
			rooms.GET("/:id/readings/latest", handlers.Reading.GetLatestReading)
			rooms.POST("", middleware.RequireRole(types.UserRoleManager), handlers.Room.CreateRoom)
			rooms.PUT("/:id", middleware.RequireRole(types.UserRoleManager), handlers.Room.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequireRole(types.UserRoleManager), handlers.Room.DeleteRoom)
		}

		readings := private.Group("/readings")
		{
			readings.GET("", handlers.Reading.ListReadings)
			readings.GET("/:id", handlers.Reading.GetReading)
			readings.POST("", handlers.Reading.CreateReading)
		}

		bills := private.Group("/bills")
		{
			bills.POST("/calculate", handlers.Billing.CalculateBill)
			bills.POST("", handlers.Billing.CreateBill)
			bills.GET("", handlers.Billing.ListBills)
			bills.GET("/:id", handlers.Billing.GetBill)
		}

		residents := private.Group("/residents")
		{
			residents.GET("", handlers.Resident.ListResidents)
			residents.GET("/:id", handlers.Resident.GetResident)
			residents.POST("", handlers.Resident.CheckIn)
			residents.POST("/:id/checkout", handlers.Resident.CheckOut)
		}

		maintenance := private.Group("/maintenance")
		{
			maintenance.GET("", handlers.Maintenance.ListRequests)
			maintenance.GET("/:id", handlers.Maintenance.GetRequest)
			maintenance.POST("", handlers.Maintenance.CreateRequest)
			maintenance.PUT("/:id/status", handlers.Maintenance.UpdateStatus)
		}

		shop := private.Group("/shop")
		{
			shop.GET("/products", handlers.Shop.ListProducts)
			shop.GET("/products/:id", handlers.Shop.GetProduct)
			shop.POST("/products", middleware.RequireRole(types.UserRoleManager), handlers.Shop.CreateProduct)
			shop.PUT("/products/:id", middleware.RequireRole(types.UserRoleManager), handlers.Shop.UpdateProduct)
			shop.DELETE("/products/:id", middleware.RequireRole(types.UserRoleManager), handlers.Shop.DeleteProduct)
			shop.POST("/sales", handlers.Shop.RecordSale)
			shop.GET("/sales", handlers.Shop.ListSales)
			shop.GET("/sales/:id", handlers.Shop.GetSale)
		}

		users := private.Group("/users", middleware.RequireRole(types.UserRoleAdmin))
		{
			users.GET("", handlers.User.ListUsers)
			users.GET("/:id", handlers.User.GetUser)
			users.PUT("/:id/role", handlers.User.UpdateUserRole)
		}
	}

	return router
}
