package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/pineneuron/meatstore-api/controllers/order"
	paymentControllers "github.com/pineneuron/meatstore-api/controllers/payment"
	"github.com/pineneuron/meatstore-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the back-office order management endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		orders := admin.Group("/orders")
		{
			orders.GET("/", orderControllers.GetAllOrdersHandler(db))
			orders.GET("/export", orderControllers.ExportOrdersExcelHandler(db))
			// websocket feed for real-time new-order notifications
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}


		qr := admin.Group("/payment/qr")
		{
			qr.POST("/", paymentControllers.SavePaymentQR(db))
			qr.DELETE("/:id", paymentControllers.DeletePaymentQR(db))
		}
	}
}
