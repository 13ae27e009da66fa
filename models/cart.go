package models

import "time"

type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subtotal  int       `json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	FoodID    string    `json:"food_id"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its dish and selected toppings, the
// shape the cart page and the checkout flow both consume.
type CartLine struct {
	CartItem
	FoodName  string    `json:"food_name"`
	ImageURL  string    `json:"image_url"`
	UnitPrice int       `json:"unit_price"`
	Toppings  []Topping `json:"toppings"`
}

// LineTotal is dish price times quantity plus one instance of each selected
// topping. Toppings are not multiplied by quantity: a checked topping applies
// once to the whole line.
func (l CartLine) LineTotal() int {
	total := l.UnitPrice * l.Quantity
	for _, t := range l.Toppings {
		total += t.Price
	}
	return total
}
