package models

import "time"

// Dish availability values. "Out of Stock" and "Unavailable" both make a dish
// non-purchasable but produce different customer messages.
const (
	DishAvailable   = "Available"
	DishOutOfStock  = "Out of Stock"
	DishUnavailable = "Unavailable"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Dish struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Price        int       `json:"price"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	Calories     int       `json:"calories"`
	PrepTime     int       `json:"prep_time"`
	Ingredients  string    `json:"ingredients"`
	AllergyInfo  string    `json:"allergy_info"`
	Status       string    `json:"status"`
	Rating       float64   `json:"rating,omitempty"`
	ReviewCount  int       `json:"review_count"`
	Toppings     []Topping `json:"toppings,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Topping struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}
