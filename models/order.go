package models

import "time"

type Order struct {
	ID              string    `json:"orderid"`
	UserID          string    `json:"userid"`
	FoodAmount      int       `json:"foodamount"`
	ShippingFee     int       `json:"shippingfee"`
	Status          int       `json:"orderstatus"`
	DeliveryAddress string    `json:"deliveryaddress"`
	OrderTime       time.Time `json:"ordertime"`
}

type OrderItem struct {
	ID        string `json:"orderitemid"`
	OrderID   string `json:"orderid"`
	FoodID    string `json:"foodid"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitprice"`
}

type OrderItemTopping struct {
	ID          string `json:"ordertoppingid"`
	OrderItemID string `json:"orderitemid"`
	ToppingID   string `json:"toppingid"`
	Price       int    `json:"price"`
}

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Payment struct {
	ID          string    `json:"paymentid"`
	OrderID     string    `json:"orderid"`
	Amount      int       `json:"amount"`
	Method      string    `json:"paymentmethod"`
	Status      string    `json:"paymentstatus"`
	PaymentDate time.Time `json:"paymentdate"`
}
