package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.GET("/check-email", auth.CheckEmailHandler(db))

		authGroup.POST("/guest", auth.CreateGuestSession(db))
	}
}
