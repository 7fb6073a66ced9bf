package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/cart"
	"github.com/pineneuron/meatstore-api/coupon"
	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// sessionStore hydrates the caller's cart store. The session key comes from the
// validated token, never from the request body.
func sessionStore(c *gin.Context, db *gorm.DB) (*cart.Store, bool) {
	sessionVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	sessionKey, _ := sessionVal.(string)

	store := cart.NewStore(cart.GormStorage{DB: db}, sessionKey)
	if err := store.Hydrate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return nil, false
	}
	return store, true
}

func cartResponse(store *cart.Store) gin.H {
	return gin.H{
		"items":           store.Items(),
		"applied_coupon":  store.AppliedCoupon(),
		"subtotal":        store.Subtotal(),
		"discount_amount": store.DiscountAmount(),
		"total":           store.Total(),
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// POST /cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Fetch product from DB; the line item snapshots server-held data
		var product models.Product
		if err := db.Preload("Variations").First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		store, ok := sessionStore(c, db)
		if !ok {
			return
		}

		ref := cart.ProductRef{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPrice:       product.VariationPrice(input.Variation),
			Unit:            product.Unit,
			DiscountPercent: product.DiscountPercent,
			Image:           product.Image,
			Variation:       input.Variation,
		}
		if err := store.AddItem(ref, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusCreated, cartResponse(store))
	}
}

// PUT /cart/items/:product_id/increment and /decrement
func AdjustCartItem(db *gorm.DB, delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		variation := c.Query("variation")

		store, sok := sessionStore(c, db)
		if !sok {
			return
		}

		var err error
		if delta > 0 {
			err = store.Increment(productID, variation)
		} else {
			err = store.Decrement(productID, variation)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// DELETE /cart/items/:product_id
//
// Without ?variation=... this removes every variation of the product.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		variation := c.Query("variation")

		store, sok := sessionStore(c, db)
		if !sok {
			return
		}

		before := len(store.Items())
		if err := store.RemoveItem(productID, variation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if len(store.Items()) == before {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, db)
		if !ok {
			return
		}
		if err := store.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /cart/coupon {code}
func ApplyCartCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Code string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store, ok := sessionStore(c, db)
		if !ok {
			return
		}

		res := coupon.NewValidator(coupon.GormFinder{DB: db}).Validate(input.Code, store.Subtotal())
		if !res.Success {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": res.Message})
			return
		}

		if err := store.ApplyCoupon(models.AppliedCoupon{Coupon: *res.Coupon, DiscountAmount: res.DiscountAmount}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply coupon"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message, "cart": cartResponse(store)})
	}
}

// DELETE /cart/coupon
func RemoveCartCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, db)
		if !ok {
			return
		}
		if err := store.RemoveCoupon(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove coupon"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(store))
	}
}

func productIDParam(c *gin.Context) (uint, bool) {
	idParam := c.Param("product_id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return 0, false
	}
	return uint(id), true
}
