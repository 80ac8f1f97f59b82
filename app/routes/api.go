// Package routes registers the public API surface onto the router.
package routes

import (
	"github.com/shashiranjanraj/dressshop/app/controllers"
	"github.com/shashiranjanraj/dressshop/pkg/middleware"
	"github.com/shashiranjanraj/dressshop/pkg/router"
)

// Controllers groups everything the route table needs.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Upload  *controllers.UploadController
	Order   *controllers.OrderController
	Admin   *controllers.AdminController
	Payment *controllers.PaymentController

	// Loader resolves token subjects for the auth middleware.
	Loader middleware.PrincipalLoader
}

// RegisterAPI mounts every endpoint under /api.
func RegisterAPI(r *router.Router, c Controllers) {
	authd := middleware.Authenticate(c.Loader)

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", c.Auth.Register)
	auth.Post("/login", "auth.login", c.Auth.Login)
	auth.Get("/me", "auth.me", c.Auth.Me, authd)

	// Catalog (public reads, admin writes)
	products := api.Group("/products")
	products.Get("", "products.index", c.Product.List)
	products.Get("/featured", "products.featured", c.Product.Featured)
	products.Post("/upload-images", "products.upload", c.Upload.UploadImages, authd, middleware.RequireAdmin)
	products.Get("/{id}", "products.show", c.Product.Get)
	products.Post("", "products.store", c.Product.Create, authd, middleware.RequireAdmin)
	products.Put("/{id}", "products.update", c.Product.Update, authd, middleware.RequireAdmin)
	products.Delete("/{id}", "products.destroy", c.Product.Delete, authd, middleware.RequireAdmin)

	// Orders (shopper)
	orders := api.Group("/orders", authd)
	orders.Post("", "orders.store", c.Order.Place)
	orders.Get("/my-orders", "orders.mine", c.Order.MyOrders)
	orders.Get("/{id}", "orders.show", c.Order.Get)

	// Payment
	pay := api.Group("/payment")
	pay.Get("/key", "payment.key", c.Payment.Key)
	pay.Post("/create-order", "payment.create", c.Payment.CreateOrder, authd)
	pay.Post("/verify", "payment.verify", c.Payment.Verify, authd)

	// Admin panel
	admin := api.Group("/admin")
	admin.Post("/login", "admin.login", c.Auth.AdminLogin)
	admin.Post("/create-default", "admin.bootstrap", c.Auth.CreateDefaultAdmin)

	panel := admin.Group("", authd, middleware.RequireAdmin)
	panel.Get("/stats", "admin.stats", c.Admin.Stats)
	panel.Get("/users", "admin.users", c.Admin.Users)
	panel.Get("/users/{id}", "admin.users.show", c.Admin.User)
	panel.Delete("/users/{id}", "admin.users.destroy", c.Admin.DeleteUser)
	panel.Get("/orders", "admin.orders", c.Admin.Orders)
	panel.Get("/orders/{id}", "admin.orders.show", c.Admin.Order)
	panel.Patch("/orders/{id}/status", "admin.orders.status", c.Admin.UpdateOrderStatus)
}
