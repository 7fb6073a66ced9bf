package paymentControllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// HandleUpload saves an uploaded file (payment screenshots mostly) and returns
// its public URL. The checkout treats the upload service as opaque; this is
// the local implementation of it.
func HandleUpload(uploadDir string, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		// Sanitize filename: remove any special chars
		cleanName := unsafeChars.ReplaceAllString(file.Filename, "_")
		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), cleanName)

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload folder: %v", err),
			})
			return
		}

		savePath := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to save file: %v", err),
			})
			return
		}

		fileURL := fmt.Sprintf("%s/uploads/%s", publicBaseURL, filename)

		log.Printf("📁 File uploaded: %s -> %s", file.Filename, fileURL)

		c.JSON(http.StatusOK, gin.H{
			"url":       fileURL,
			"public_id": filename,
			"message":   "File uploaded successfully",
		})
	}
}
