package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/auth"
	"github.com/pineneuron/meatstore-api/cart"
	"github.com/pineneuron/meatstore-api/checkout"
	"github.com/pineneuron/meatstore-api/config"
	"gorm.io/gorm"
)

// POST /checkout/create-order
//
// Authoritative order creation from the session's stored cart. The request
// body carries only the customer form; items, prices and the applied coupon
// come from the server-held snapshot, and the submission service recomputes
// every amount. Validation failures come back with a specific message so the
// customer can fix and retry without losing anything they typed.
func CreateOrder(db *gorm.DB, svc *checkout.Service, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid input: " + err.Error()})
			return
		}

		// Session key from the validated token, not the payload
		sessionVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
			return
		}
		sessionKey, _ := sessionVal.(string)

		store := cart.NewStore(cart.GormStorage{DB: db}, sessionKey)
		orch := checkout.NewOrchestrator(cfg, store, svc, auth.GormRegistrar{DB: db})

		order, err := orch.Submit(form)
		if err != nil {
			var fieldErrs checkout.FieldErrors
			var rejection checkout.Rejection
			switch {
			case errors.As(err, &fieldErrs):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "Please fix the highlighted fields", "fields": fieldErrs})
			case errors.Is(err, checkout.ErrCartEmpty):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "Your cart is empty"})
			case errors.As(err, &rejection):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": rejection.Reason})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not place the order, please try again"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"ok":           true,
			"order_number": order.OrderNumber,
			"order":        order,
			"warnings":     orch.Warnings(),
		})
	}
}
