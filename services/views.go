package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fusionorder/fusion-order-api/models"
)

// UserView is the client-facing projection of a user. It never carries the
// password hash.
type UserView struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    *string     `json:"email"`
	Phone    *string     `json:"phone"`
	Role     models.Role `json:"role"`
	Enabled  bool        `json:"enabled"`
}

// NewUserView projects a user entity into its view.
func NewUserView(u *models.User) *UserView {
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Enabled:  u.Enabled,
	}
}

// ProductView is the client-facing projection of a product.
type ProductView struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProductView projects a product entity into its view.
func NewProductView(p *models.Product) *ProductView {
	return &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
}

// OrderView is the client-facing projection of an order form, embedding the
// view of the product it references.
type OrderView struct {
	ID           uint               `json:"id"`
	Product      *ProductView       `json:"product"`
	Quantity     int                `json:"quantity"`
	ContactName  string             `json:"contact_name"`
	ContactPhone string             `json:"contact_phone"`
	ContactEmail *string            `json:"contact_email"`
	Requirements string             `json:"requirements"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

// NewOrderView projects an order form entity into its view.
func NewOrderView(o *models.OrderForm) *OrderView {
	return &OrderView{
		ID:           o.ID,
		Product:      NewProductView(&o.Product),
		Quantity:     o.Quantity,
		ContactName:  o.ContactName,
		ContactPhone: o.ContactPhone,
		ContactEmail: o.ContactEmail,
		Requirements: o.Requirements,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}
