package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/fusionorder/fusion-order-api/models"
)

// OrderService implements order-form submission and status tracking.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an OrderService backed by the given database.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create persists a new order form. The product reference must resolve, and
// the stored product replaces whatever product snapshot the caller supplied.
// Status is forced to PENDING regardless of client input.
func (s *OrderService) Create(order *models.OrderForm) (*OrderView, error) {
	var product models.Product
	if err := s.db.First(&product, order.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Order rejected: product not found, productId: %d", order.ProductID)
			return nil, BusinessError("product not found")
		}
		return nil, InternalError(err)
	}

	order.Product = product
	order.Status = models.StatusPending

	// Omit the association so the authoritative product row is never
	// rewritten from the embedded copy.
	if err := s.db.Omit("Product").Create(order).Error; err != nil {
		return nil, InternalError(err)
	}
	log.Printf("Order created, id: %d, productId: %d, quantity: %d", order.ID, order.ProductID, order.Quantity)
	return NewOrderView(order), nil
}

// List returns all order forms.
func (s *OrderService) List() ([]*OrderView, error) {
	var orders []models.OrderForm
	if err := s.db.Preload("Product").Find(&orders).Error; err != nil {
		return nil, InternalError(err)
	}
	return orderViews(orders), nil
}

// ListByProduct returns the order forms referencing the given product.
func (s *OrderService) ListByProduct(productID uint) ([]*OrderView, error) {
	var orders []models.OrderForm
	if err := s.db.Preload("Product").Where("product_id = ?", productID).Find(&orders).Error; err != nil {
		return nil, InternalError(err)
	}
	return orderViews(orders), nil
}

// ListByStatus returns the order forms with the given status.
func (s *OrderService) ListByStatus(status models.OrderStatus) ([]*OrderView, error) {
	if !status.IsValid() {
		return nil, ValidationError("invalid order status")
	}
	var orders []models.OrderForm
	if err := s.db.Preload("Product").Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, InternalError(err)
	}
	return orderViews(orders), nil
}

// Get returns the order form with the given id.
func (s *OrderService) Get(id uint) (*OrderView, error) {
	var order models.OrderForm
	if err := s.db.Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("order", id)
		}
		return nil, InternalError(err)
	}
	return NewOrderView(&order), nil
}

// UpdateStatus overwrites the order's status unconditionally. Any status may
// replace any other; there is no transition guard.
func (s *OrderService) UpdateStatus(id uint, status models.OrderStatus) (*OrderView, error) {
	if !status.IsValid() {
		return nil, ValidationError("invalid order status")
	}
	var order models.OrderForm
	if err := s.db.Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("order", id)
		}
		return nil, InternalError(err)
	}

	oldStatus := order.Status
	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, InternalError(err)
	}
	log.Printf("Order status updated, id: %d, %s -> %s", id, oldStatus, status)
	return NewOrderView(&order), nil
}

// Delete removes the order form permanently.
func (s *OrderService) Delete(id uint) error {
	var order models.OrderForm
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("order", id)
		}
		return InternalError(err)
	}
	if err := s.db.Delete(&order).Error; err != nil {
		return InternalError(err)
	}
	log.Printf("Order deleted, id: %d", id)
	return nil
}

func orderViews(orders []models.OrderForm) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views
}
