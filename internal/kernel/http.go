// Package kernel assembles the HTTP handler: global middleware, the metrics
// and health endpoints, static uploads, and the API route table.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/dressshop/app/controllers"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/app/routes"
	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/metrics"
	"github.com/shashiranjanraj/dressshop/pkg/middleware"
	"github.com/shashiranjanraj/dressshop/pkg/payment"
	"github.com/shashiranjanraj/dressshop/pkg/reqid"
	"github.com/shashiranjanraj/dressshop/pkg/response"
	"github.com/shashiranjanraj/dressshop/pkg/router"
	"github.com/shashiranjanraj/dressshop/pkg/storage"
	"github.com/shashiranjanraj/dressshop/pkg/workerpool"
)

// Deps are the shared resources the kernel does not own.
type Deps struct {
	UploadPool *workerpool.Pool
}

// Build wires repositories, services and controllers, and returns the root
// handler plus the router (for route listing).
func Build(d Deps) (*router.Router, http.Handler) {
	userRepo := repositories.NewUserRepo()
	adminRepo := repositories.NewAdminRepo()
	productRepo := repositories.NewProductRepo()
	orderRepo := repositories.NewOrderRepo()

	authSvc := services.NewAuthService(userRepo, adminRepo)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo)
	adminSvc := services.NewAdminService(userRepo, orderRepo)
	paymentSvc := services.NewPaymentService(payment.NewRazorpay())

	r := router.New()

	// Global middleware stack (outermost to innermost):
	//  1. Prometheus metrics for accurate total latency
	//  2. Recovery before anything else can panic the goroutine
	//  3. Request ID injected before the first log line
	//  4. Logger tags every line with the request_id
	//  5. CORS
	//  6. Rate limiter rejects abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{
			"message":   "DressShop API",
			"status":    "running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	// Locally stored product images.
	r.Static("/uploads", storage.LocalRoot())

	routes.RegisterAPI(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		Product: controllers.NewProductController(productSvc),
		Upload:  controllers.NewUploadController(d.UploadPool),
		Order:   controllers.NewOrderController(orderSvc),
		Admin:   controllers.NewAdminController(adminSvc),
		Payment: controllers.NewPaymentController(paymentSvc),
		Loader:  authSvc,
	})

	return r, r.Handler()
}
