package couponControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/coupon"
	"gorm.io/gorm"
)

type ValidateCouponInput struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"orderAmount" binding:"required,gt=0"`
}

// POST /coupon/validate
//
// Stateless eligibility check. The same rules run again server-side at order
// submission; this endpoint only drives the "Apply" button.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res := coupon.NewValidator(coupon.GormFinder{DB: db}).Validate(input.Code, input.OrderAmount)

		// Failures are a normal outcome here; the message goes to the customer
		// verbatim either way.
		c.JSON(http.StatusOK, res)
	}
}
