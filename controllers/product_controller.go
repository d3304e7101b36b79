package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
	"github.com/fusionorder/fusion-order-api/utils"
)

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Category    string          `json:"category" binding:"required,max=50"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Available   *bool           `json:"available"`
}

// UpdateProductRequest represents a partial product update. Absent fields
// leave the stored values untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Available   *bool            `json:"available"`
}

// ListProducts handles GET /api/products with optional available, category
// and keyword filters.
func ListProducts(c *gin.Context) {
	svc := services.NewProductService(config.GetDB())

	var (
		views []*services.ProductView
		err   error
	)
	switch {
	case c.Query("keyword") != "":
		views, err = svc.Search(c.Query("keyword"))
	case c.Query("category") != "":
		views, err = svc.ListByCategory(c.Query("category"))
	case c.Query("available") == "true":
		views, err = svc.ListAvailable()
	default:
		views, err = svc.List()
	}
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, views)
}

// GetProduct handles GET /api/products/:id
func GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := services.NewProductService(config.GetDB()).Get(id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

// CreateProduct handles POST /api/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	view, err := services.NewProductService(config.GetDB()).Create(&product)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "product created", view)
}

// UpdateProduct handles PUT /api/products/:id
func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	patch := services.ProductPatch{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	}

	view, err := services.NewProductService(config.GetDB()).Update(id, patch)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

// DeleteProduct handles DELETE /api/products/:id
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := services.NewProductService(config.GetDB()).Delete(id); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "product deleted", nil)
}

// UploadProductImage handles POST /api/products/:id/image - stores the
// uploaded image and points the product's image_url at it.
func UploadProductImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		BadRequest(c, "image file is required")
		return
	}
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		BadRequest(c, err.Error())
		return
	}

	url, err := services.GetImageStorage().Save(fileHeader)
	if err != nil {
		Fail(c, err)
		return
	}

	view, err := services.NewProductService(config.GetDB()).Update(id, services.ProductPatch{ImageURL: &url})
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "image uploaded", view)
}
