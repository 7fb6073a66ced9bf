package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
)

// GET /payment/qr — QR codes the checkout page shows for bank transfers.
func ListPaymentQRs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var files []models.PaymentQR
		if err := db.Order("created_at DESC").Find(&files).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment QR codes"})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}

// POST /payment/qr (admin) — record an uploaded QR code image.
func SavePaymentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FileName string `json:"file_name" binding:"required"`
			FileURL  string `json:"file_url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		qr := models.PaymentQR{FileName: input.FileName, FileURL: input.FileURL}
		if err := db.Create(&qr).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save QR record"})
			return
		}
		c.JSON(http.StatusCreated, qr)
	}
}

// DELETE /payment/qr/:id (admin)
func DeletePaymentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result := db.Delete(&models.PaymentQR{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete QR record"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "QR record not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "QR record deleted"})
	}
}
