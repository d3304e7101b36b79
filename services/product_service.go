package services

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/models"
)

// ProductService implements catalog CRUD and the public listing queries.
type ProductService struct {
	db *gorm.DB
}

// ProductPatch is a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
	Available   *bool
}

// NewProductService creates a ProductService backed by the given database.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Create persists a new product. The price must be positive.
func (s *ProductService) Create(product *models.Product) (*ProductView, error) {
	if !product.Price.IsPositive() {
		return nil, ValidationError("price must be greater than 0")
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, InternalError(err)
	}
	log.Printf("Product created, id: %d, name: %s", product.ID, product.Name)
	return NewProductView(product), nil
}

// List returns all products.
func (s *ProductService) List() ([]*ProductView, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, InternalError(err)
	}
	return productViews(products), nil
}

// ListAvailable returns the products currently marked available.
func (s *ProductService) ListAvailable() ([]*ProductView, error) {
	var products []models.Product
	if err := s.db.Where("available = ?", true).Find(&products).Error; err != nil {
		return nil, InternalError(err)
	}
	return productViews(products), nil
}

// ListByCategory returns the products in the given category.
func (s *ProductService) ListByCategory(category string) ([]*ProductView, error) {
	var products []models.Product
	if err := s.db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, InternalError(err)
	}
	return productViews(products), nil
}

// Search returns the products whose name contains the keyword, matched
// case-insensitively.
func (s *ProductService) Search(keyword string) ([]*ProductView, error) {
	var products []models.Product
	if err := s.db.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%").Find(&products).Error; err != nil {
		return nil, InternalError(err)
	}
	return productViews(products), nil
}

// Get returns the product with the given id.
func (s *ProductService) Get(id uint) (*ProductView, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("product", id)
		}
		return nil, InternalError(err)
	}
	return NewProductView(&product), nil
}

// Update merges the non-nil patch fields onto the stored product.
func (s *ProductService) Update(id uint, patch ProductPatch) (*ProductView, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("product", id)
		}
		return nil, InternalError(err)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, ValidationError("price must be greater than 0")
		}
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Available != nil {
		product.Available = *patch.Available
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, InternalError(err)
	}
	log.Printf("Product updated, id: %d, name: %s", id, product.Name)
	return NewProductView(&product), nil
}

// Delete removes the product permanently.
func (s *ProductService) Delete(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("product", id)
		}
		return InternalError(err)
	}
	if err := s.db.Delete(&product).Error; err != nil {
		return InternalError(err)
	}
	log.Printf("Product deleted, id: %d", id)
	return nil
}

func productViews(products []models.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i]))
	}
	return views
}
