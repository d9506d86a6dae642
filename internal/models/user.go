package models

import "time"

// User represents a registered account of the store.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
