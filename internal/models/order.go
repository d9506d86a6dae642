package models

import "time"

// Order represents a customer order for a single product.
// The owning user is set from the authenticated identity at creation and
// never changes afterwards. UserID is nullable: legacy orders created before
// accounts existed carry no owner and are reachable by staff only.
type Order struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID     string    `json:"product_id" gorm:"type:varchar(36);index" validate:"required"`
	Product       *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity      int       `json:"quantity" validate:"required,gt=0"`
	CustomerName  string    `json:"customer_name" gorm:"type:varchar(255)" validate:"required,max=255"`
	CustomerEmail string    `json:"customer_email" gorm:"type:varchar(255)" validate:"required,email"`
	UserID        *string   `json:"user_id" gorm:"type:varchar(36);index"`
	CreatedAt     time.Time `json:"created_at"`
}

// OwnerID reports the owning user of the order, if any.
func (o *Order) OwnerID() (string, bool) {
	if o.UserID == nil {
		return "", false
	}
	return *o.UserID, true
}
