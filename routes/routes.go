package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up Auth, Store, and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// 2️⃣ Storefront routes (browse public, cart/checkout session-protected)
	SetupStoreRoutes(r, db, cfg)

	// 3️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, db)
}
