package models

import (
	"time"
)

// OrderStatus is the processing state of an order form. Transitions are
// unconstrained: any status may overwrite any other.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid reports whether the status is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderForm represents an anonymous order submission. It references a
// product but does not own it, and is not tied to a user account;
// follow-up happens through the contact fields.
type OrderForm struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ProductID    uint        `gorm:"not null;index" json:"product_id"`
	Product      Product     `gorm:"foreignKey:ProductID" json:"product"`
	Quantity     int         `gorm:"not null" json:"quantity"`
	ContactName  string      `gorm:"column:contact_name;not null;size:50" json:"contact_name"`
	ContactPhone string      `gorm:"column:contact_phone;not null;size:20" json:"contact_phone"`
	ContactEmail *string     `gorm:"column:contact_email;size:100" json:"contact_email"`
	Requirements string      `gorm:"type:text" json:"requirements"`
	Status       OrderStatus `gorm:"not null;size:20;default:'PENDING'" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the OrderForm model
func (OrderForm) TableName() string {
	return "order_forms"
}
