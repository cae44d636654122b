package routes

import (
	"delivery-backend/handlers"
	"delivery-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Users      *handlers.UserHandler
	Stores     *handlers.StoreHandler
	Menus      *handlers.MenuHandler
	Orders     *handlers.OrderHandler
	Reviews    *handlers.ReviewHandler
	Addresses  *handlers.AddressHandler
	Categories *handlers.CategoryHandler
}

// Setup registers the full API surface. Role and ownership checks live in the
// services; routing only distinguishes public from authenticated.
func Setup(r *gin.Engine, auth *middleware.Auth, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/user/signUp", h.Users.SignUp)
		public.POST("/user/signIn", h.Users.SignIn)
	}

	// ── Authenticated routes ───────────────────────────────────────
	api := r.Group("/api")
	api.Use(auth.Required())
	{
		// Orders
		api.POST("/orders", h.Orders.Create)
		api.GET("/orders", h.Orders.List)
		api.GET("/orders/:id", h.Orders.Get)
		api.PATCH("/orders/:id", h.Orders.Update)
		api.DELETE("/orders/:id", h.Orders.Delete)
		api.GET("/orders/:id/payment", h.Orders.Payment)

		// Menus
		api.POST("/menus", h.Menus.Create)
		api.GET("/menus", h.Menus.List)
		api.GET("/menus/search", h.Menus.Search)
		api.GET("/menus/:menuId", h.Menus.Get)
		api.PATCH("/menus/:menuId", h.Menus.Update)
		api.DELETE("/menus/:menuId", h.Menus.Delete)

		// Stores
		api.POST("/stores", h.Stores.Create)
		api.GET("/stores", h.Stores.List)
		api.GET("/stores/search", h.Stores.Search)
		api.GET("/stores/:id", h.Stores.Get)
		api.PATCH("/stores/:id", h.Stores.Update)
		api.DELETE("/stores/:id", h.Stores.Delete)

		// Reviews
		api.POST("/stores/:id/reviews", h.Reviews.Create)
		api.GET("/stores/:id/reviews", h.Reviews.ListByStore)
		api.GET("/reviews/:reviewId", h.Reviews.Get)
		api.PUT("/reviews/:reviewId", h.Reviews.Update)
		api.DELETE("/reviews/:reviewId", h.Reviews.Delete)

		// Users
		api.GET("/user", h.Users.Search)
		api.GET("/user/:id", h.Users.Get)
		api.PATCH("/user/:id", h.Users.Update)
		api.DELETE("/user/:id", h.Users.Delete)

		// Delivery addresses
		api.POST("/address", h.Addresses.Create)
		api.GET("/address", h.Addresses.List)
		api.GET("/address/:id", h.Addresses.Get)
		api.PATCH("/address/:id", h.Addresses.Update)
		api.DELETE("/address/:id", h.Addresses.Delete)

		// Categories
		api.POST("/categories", h.Categories.Create)
		api.GET("/categories", h.Categories.List)
		api.PATCH("/categories/:id", h.Categories.Update)
		api.DELETE("/categories/:id", h.Categories.Delete)
	}
}
