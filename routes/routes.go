package routes

import (
	"net/http"

	"vastra-api/controllers"
	"vastra-api/middleware"
	"vastra-api/session"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
	Auth     *controllers.AuthController
	TryOn    *controllers.TryOnController
}

// RegisterRoutes sets up the public API surface. Everything past the catalog
// and the sign-in flow requires a live session.
func RegisterRoutes(r *gin.Engine, c Controllers, store session.Store) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")

	// Public catalog
	api.GET("/products", c.Products.GetProducts)
	api.GET("/products/:id", c.Products.GetProductByID)

	// Sign-in flow
	api.GET("/auth/google", c.Auth.GoogleLogin)
	api.GET("/auth/google/callback", c.Auth.GoogleCallback)
	api.POST("/auth/logout", c.Auth.Logout)

	// Session-scoped routes
	authed := api.Group("")
	authed.Use(middleware.RequireSession(store))

	authed.GET("/me", c.Auth.Me)

	authed.GET("/cart", c.Cart.GetCart)
	authed.POST("/cart", c.Cart.AddItem)
	authed.DELETE("/cart/items/:id", c.Cart.RemoveItem)

	authed.POST("/checkout", c.Checkout.Checkout)

	authed.GET("/orders", c.Orders.GetOrders)
	authed.GET("/orders/:id", c.Orders.GetOrderByID)

	authed.POST("/tryon", c.TryOn.StartTryOn)
	authed.GET("/tryon/:id", c.TryOn.GetTryOn)
}
