package routes

import (
	"github.com/ordena/ordena/app/controllers"
	appgraphql "github.com/ordena/ordena/app/graphql"
	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/realtime"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/middleware"
	"github.com/ordena/ordena/pkg/rbac"
	"github.com/ordena/ordena/pkg/router"
	"github.com/ordena/ordena/pkg/ws"
)

// RegisterAPI mounts every API route. The cart store is shared between
// the cart endpoints and checkout so both see the same cart.
func RegisterAPI(r *router.Router, cartStore services.CartStore) {
	authController := controllers.NewAuthController()
	productController := controllers.NewProductController()
	cartController := controllers.NewCartController(services.NewCartService(cartStore))
	orderController := controllers.NewOrderController(services.NewCheckoutService(cartStore))
	userController := controllers.NewUserController()

	api := r.Group("/api")

	// Public.
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/refresh", "auth.refresh", ctx.Wrap(authController.Refresh))
	api.Get("/products", "products.index", ctx.Wrap(productController.Index))
	api.Get("/products/categories", "products.categories", ctx.Wrap(productController.Categories))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))
	api.Post("/graphql", "graphql", appgraphql.Handler(), middleware.AuthOptional)

	// Cart, keyed by the session cookie; no login required to browse.
	api.Get("/cart", "cart.show", ctx.Wrap(cartController.Show))
	api.Post("/cart/items", "cart.add", ctx.Wrap(cartController.Add))
	api.Put("/cart/items/{productID}", "cart.update", ctx.Wrap(cartController.UpdateItem))
	api.Delete("/cart/items/{productID}", "cart.remove", ctx.Wrap(cartController.Remove))
	api.Delete("/cart", "cart.clear", ctx.Wrap(cartController.Clear))

	// Any authenticated user.
	authed := api.Group("", middleware.Auth)
	authed.Get("/profile", "auth.profile", ctx.Wrap(authController.Profile))
	authed.Post("/checkout", "orders.checkout", ctx.Wrap(orderController.Checkout))
	authed.Get("/orders", "orders.index", ctx.Wrap(orderController.Index))
	authed.Get("/orders/{id}", "orders.show", ctx.Wrap(orderController.Show))
	authed.Get("/orders/{id}/events", "orders.events", ctx.Wrap(orderController.Events))

	// Staff: catalog mutations and order handling.
	staff := api.Group("", middleware.Auth, rbac.HasRole(models.RoleAdmin, models.RoleEmployee))
	staff.Post("/products", "products.store", ctx.Wrap(productController.Store))
	staff.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update))
	staff.Post("/products/{id}/image", "products.image", ctx.Wrap(productController.UploadImage))
	staff.Patch("/orders/{id}/status", "orders.status", ctx.Wrap(orderController.ChangeStatus))

	// Admin: destructive catalog ops and user management.
	admin := api.Group("", middleware.Auth, rbac.HasRole(models.RoleAdmin))
	admin.Delete("/products/{id}", "products.destroy", ctx.Wrap(productController.Destroy))
	admin.Get("/users", "users.index", ctx.Wrap(userController.Index))
	admin.Get("/users/{id}", "users.show", ctx.Wrap(userController.Show))
	admin.Post("/users", "users.store", ctx.Wrap(userController.Store))
	admin.Put("/users/{id}", "users.update", ctx.Wrap(userController.Update))
	admin.Delete("/users/{id}", "users.destroy", ctx.Wrap(userController.Destroy))

	// Live order feed for staff dashboards.
	feed := r.Group("/ws", middleware.Auth, rbac.HasRole(models.RoleAdmin, models.RoleEmployee))
	feed.Get("/orders", "ws.orders", ctx.Wrap(func(c *ctx.Context) {
		ws.Upgrade(c.W, c.R, realtime.OrderFeed)
	}))
}
