package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/config"
)

// GetUploadedImage handles GET /api/uploads/:filename - serves locally
// stored product images. Public: product pages embed these URLs.
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		BadRequest(c, "filename is required")
		return
	}

	// Reject anything that could escape the upload directory.
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		BadRequest(c, "invalid filename")
		return
	}

	if strings.ToLower(filepath.Ext(filename)) != ".png" {
		BadRequest(c, "only PNG files are supported")
		return
	}

	filePath := filepath.Join(config.GetConfig().UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, Response{
			Code:      http.StatusNotFound,
			Message:   "image not found",
			Data:      nil,
			Timestamp: time.Now(),
		})
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
