package model

import (
	"time"
)

// Menu categories offered by the menu item form.
const (
	CategoryAppetizer  = "Appetizer"
	CategoryMainCourse = "Main Course"
	CategoryDessert    = "Dessert"
	CategoryBeverage   = "Beverage"
	CategorySide       = "Side"
)

// MenuItem represents one dish or drink on a restaurant's menu
type MenuItem struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category" gorm:"type:varchar(50)"`
	ImageURL     string    `json:"image_url" gorm:"type:text"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName maps the model to the menu_items table
func (MenuItem) TableName() string {
	return "menu_items"
}
