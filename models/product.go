package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item that order forms reference.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:100" json:"name"`
	Category    string          `gorm:"not null;size:50" json:"category"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"column:image_url;size:255" json:"image_url"`
	Available   bool            `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
