package models

import "time"

type OrderReview struct {
	ID        string    `json:"reviewid"`
	OrderID   string    `json:"orderid"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdat"`
}

type FoodReview struct {
	ID        string    `json:"reviewid"`
	OrderID   string    `json:"orderid"`
	FoodID    string    `json:"foodid"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdat"`
	// Display-only joins for listings.
	ReviewerName string `json:"reviewer_name,omitempty"`
	FoodName     string `json:"food_name,omitempty"`
}
