package model

import (
	"time"
)

// Profile links an authenticated user to the restaurant they administer.
// Every scoped query in the service starts from this row.
type Profile struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	UserID       string    `json:"user_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	RestaurantID *uint     `json:"restaurant_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName maps the model to the profiles table
func (Profile) TableName() string {
	return "profiles"
}
