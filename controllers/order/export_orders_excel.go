package orderControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pineneuron/meatstore-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /orders/export — download all orders as an Excel report.
func ExportOrdersExcelHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet"})
			return
		}

		header := sheet.AddRow()
		for _, h := range []string{
			"Order Number", "Date", "Customer", "Phone", "City", "Items",
			"Subtotal", "Delivery Fee", "Discount", "Tax", "Total",
			"Coupon", "Status", "Payment Status", "Payment Method",
		} {
			header.AddCell().SetString(h)
		}

		for _, o := range orders {
			itemCount := 0
			for _, it := range o.Items {
				itemCount += it.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetString(o.OrderNumber)
			row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04"))
			row.AddCell().SetString(o.CustomerName)
			row.AddCell().SetString(o.CustomerPhone)
			row.AddCell().SetString(o.City)
			row.AddCell().SetInt(itemCount)
			row.AddCell().SetFloat(o.Subtotal)
			row.AddCell().SetFloat(o.DeliveryFee)
			row.AddCell().SetFloat(o.DiscountAmount)
			row.AddCell().SetFloat(o.TaxAmount)
			row.AddCell().SetFloat(o.TotalAmount)
			row.AddCell().SetString(o.CouponCode)
			row.AddCell().SetString(string(o.Status))
			row.AddCell().SetString(string(o.PaymentStatus))
			row.AddCell().SetString(o.PaymentMethod)
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
