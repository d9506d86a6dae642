package models

import "time"

// Product represents a product in the public catalog.
// Price must stay positive and StockQuantity non-negative.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}
