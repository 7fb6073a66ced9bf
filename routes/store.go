package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/checkout"
	"github.com/pineneuron/meatstore-api/config"
	cartControllers "github.com/pineneuron/meatstore-api/controllers/cart"
	checkoutControllers "github.com/pineneuron/meatstore-api/controllers/checkout"
	couponControllers "github.com/pineneuron/meatstore-api/controllers/coupon"
	orderControllers "github.com/pineneuron/meatstore-api/controllers/order"
	paymentControllers "github.com/pineneuron/meatstore-api/controllers/payment"
	productControllers "github.com/pineneuron/meatstore-api/controllers/product"
	"github.com/pineneuron/meatstore-api/middleware"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the storefront: public browsing plus the
// session-scoped cart, coupon and checkout endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// ──────────────── Browse (public) ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetAllCategories(db))
	r.GET("/categories/:id", productControllers.GetCategoryByID(db))
	r.GET("/categories-with-products", productControllers.GetAllCategoriesWithProducts(db))

	// ──────────────── Payment info (public) ────────────────
	r.GET("/payment/qr", paymentControllers.ListPaymentQRs(db))

	// Coupon pre-check on "Apply"; re-run server-side at submission
	r.POST("/coupon/validate", couponControllers.ValidateCoupon(db))

	svc := checkout.NewService(db, cfg)
	svc.OnOrderPlaced = orderControllers.BroadcastNewOrder

	// ──────────────── Session-scoped (guest or user token) ────────────────
	session := r.Group("/")
	session.Use(middleware.ValidateToken)
	{
		cartGroup := session.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:product_id/increment", cartControllers.AdjustCartItem(db, +1))
			cartGroup.PUT("/items/:product_id/decrement", cartControllers.AdjustCartItem(db, -1))
			cartGroup.DELETE("/items/:product_id", cartControllers.RemoveCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearCart(db))

			cartGroup.POST("/coupon", cartControllers.ApplyCartCoupon(db))
			cartGroup.DELETE("/coupon", cartControllers.RemoveCartCoupon(db))
		}

		session.POST("/checkout/create-order", checkoutControllers.CreateOrder(db, svc, cfg))

		session.POST("/upload", paymentControllers.HandleUpload(cfg.UploadDir, cfg.PublicBaseURL))
	}
}
