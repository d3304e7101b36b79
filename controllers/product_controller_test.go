package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

func setupProductRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.SetDB(setupTestDB(t))

	router := gin.New()
	router.GET("/api/products", ListProducts)
	router.GET("/api/products/:id", GetProduct)
	router.POST("/api/products", CreateProduct)
	router.PUT("/api/products/:id", UpdateProduct)
	router.DELETE("/api/products/:id", DeleteProduct)
	router.POST("/api/products/:id/image", UploadProductImage)
	return router
}

func TestCreateAndGetProduct(t *testing.T) {
	router := setupProductRouter(t)

	w := postJSON(router, "/api/products", gin.H{"name": "Widget", "category": "tools", "price": 9.99})
	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["available"], "availability should default to true")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
}

func TestCreateProductValidation(t *testing.T) {
	router := setupProductRouter(t)

	// Missing name.
	w := postJSON(router, "/api/products", gin.H{"category": "tools", "price": 9.99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-positive price.
	w = postJSON(router, "/api/products", gin.H{"name": "Free", "category": "tools", "price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price must be greater than 0")
}

func TestGetProductNotFound(t *testing.T) {
	router := setupProductRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/9999", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProductsFilters(t *testing.T) {
	router := setupProductRouter(t)
	db := config.GetDB()

	seed := func(name, category string, available bool) {
		t.Helper()
		p := models.Product{Name: name, Category: category, Price: decimal.NewFromInt(5), Available: available}
		assert.NoError(t, db.Create(&p).Error)
	}
	seed("Steel Widget", "tools", true)
	seed("Brass widget", "tools", false)
	seed("Gadget", "toys", true)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	w := get("/api/products")
	envelope := decodeEnvelope(t, w)
	assert.Len(t, envelope["data"], 3)

	w = get("/api/products?available=true")
	envelope = decodeEnvelope(t, w)
	assert.Len(t, envelope["data"], 2)

	w = get("/api/products?category=toys")
	envelope = decodeEnvelope(t, w)
	assert.Len(t, envelope["data"], 1)

	w = get("/api/products?keyword=widget")
	envelope = decodeEnvelope(t, w)
	assert.Len(t, envelope["data"], 2)
}

func TestUploadProductImage(t *testing.T) {
	router := setupProductRouter(t)
	db := config.GetDB()

	product := models.Product{Name: "Widget", Category: "tools", Price: decimal.NewFromInt(5), Available: true}
	assert.NoError(t, db.Create(&product).Error)

	mock := &services.MockImageStorage{}
	services.SetImageStorage(mock)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "widget.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake png bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products/1/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"widget.png"}, mock.Saved)

	var stored models.Product
	assert.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, "/api/uploads/widget.png", stored.ImageURL)
}

func TestUploadProductImageRejectsNonPNG(t *testing.T) {
	router := setupProductRouter(t)
	db := config.GetDB()

	product := models.Product{Name: "Widget", Category: "tools", Price: decimal.NewFromInt(5), Available: true}
	assert.NoError(t, db.Create(&product).Error)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "widget.gif")
	assert.NoError(t, err)
	_, err = part.Write([]byte("gif bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products/1/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
