package model

import (
	"time"
)

// Staff positions offered by the roster form.
const (
	PositionManager   = "Manager"
	PositionChef      = "Chef"
	PositionWaiter    = "Waiter"
	PositionHost      = "Host"
	PositionBartender = "Bartender"
)

// Staff shifts offered by the roster form.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftEvening   = "Evening"
	ShiftNight     = "Night"
)

// Defaults applied when a roster form omits position or shift.
const (
	DefaultPosition = PositionWaiter
	DefaultShift    = ShiftMorning
)

// StaffMember represents one employee on a restaurant's roster
type StaffMember struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Position     string    `json:"position" gorm:"type:varchar(50);not null"`
	Shift        string    `json:"shift" gorm:"type:varchar(50);not null"`
	Phone        string    `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Email        string    `json:"email,omitempty" gorm:"type:varchar(100)"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName maps the model to the staff table
func (StaffMember) TableName() string {
	return "staff"
}
