package routes

import (
	"os"
	"strings"
	"time"

	"aurelia_back_end/internal/handlers/admin"
	"aurelia_back_end/internal/handlers/payement"
	"aurelia_back_end/internal/handlers/product"
	"aurelia_back_end/internal/handlers/user"
	"aurelia_back_end/internal/middleware"
	"aurelia_back_end/internal/order"
	"aurelia_back_end/internal/services"
	"aurelia_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Assemblage du service commandes : panier Redis, catalogue Scylla,
	// config de paiement (Scylla + cache), commandes Scylla, Stripe.
	configStore := store.NewScyllaConfigStore()
	orderService := order.NewService(
		store.NewRedisCart(),
		store.NewScyllaCatalog(),
		configStore,
		store.NewScyllaOrders(),
		services.NewStripePayments(),
	)
	payement.Init(orderService, configStore)
	admin.Init(orderService)

	r.Use(corsMiddleware())

	api := r.Group("/api")

	// --- Auth ---
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)
	api.GET("/auth/me", middleware.AuthRequired(), user.Me)

	// --- Catalogue (public) ---
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/banners", product.GetBanners)

	// --- Paiement ---
	api.GET("/payment/config", payement.GetPaymentConfig)
	api.POST("/payment/webhook", payement.StripeWebhook)

	// --- Routes authentifiées ---
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Panier
		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.PUT("/cart/:productId", user.UpdateCartItem)
		auth.DELETE("/cart/clear", user.ClearCart)
		auth.DELETE("/cart/:productId", user.RemoveFromCart)
		auth.GET("/cart/ws", user.CartWebSocket)

		// Adresses
		auth.GET("/addresses/mine", user.ListMyAddresses)
		auth.POST("/addresses", user.CreateAddress)
		auth.POST("/addresses/:id/default", user.MakeDefaultAddress)
		auth.DELETE("/addresses/:id", user.DeleteAddress)

		// Checkout et commandes
		auth.POST("/checkout", payement.Checkout)
		auth.GET("/orders/mine", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.GET("/orders/:id/invoice", user.DownloadInvoice)
	}

	// --- Routes admin ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.PUT("/payment/config", payement.UpdatePaymentConfig)

		adminGroup.GET("/orders", admin.GetAllOrders)
		adminGroup.GET("/orders/stats", admin.GetOrderStats)
		adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)

		adminGroup.GET("/users", admin.GetAllUsers)
		adminGroup.PUT("/users/:id/role", admin.UpdateUserRole)

		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.DELETE("/products/:id", product.DeleteProduct)
		adminGroup.POST("/products/:id/images", product.UploadProductImage)
		adminGroup.PUT("/products/:id/stock", product.UpdateStock)
		adminGroup.GET("/products/low-stock", product.GetLowStock)

		adminGroup.POST("/banners", admin.CreateBanner)
		adminGroup.PUT("/banners/:id", admin.UpdateBanner)
		adminGroup.DELETE("/banners/:id", admin.DeleteBanner)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
