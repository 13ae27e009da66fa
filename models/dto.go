package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" binding:"omitempty"`
	Role     string `json:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// AddToCartRequest uses the storefront's field names as-is.
type AddToCartRequest struct {
	UserID         string   `json:"userId" binding:"required"`
	FoodID         string   `json:"foodId" binding:"required"`
	Quantity       int      `json:"quantity"`
	SelectedExtras []string `json:"selectedExtras"`
	Note           string   `json:"note"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// PlaceOrderRequest mirrors the checkout page payload. totalprice already
// includes the shipping fee.
type PlaceOrderRequest struct {
	UserID          string `json:"userid" binding:"required"`
	ShippingAddress string `json:"shippingaddress"`
	TotalPrice      int    `json:"totalprice"`
	PaymentMethod   string `json:"paymentmethod"`
}

type FoodReviewInput struct {
	FoodID  string `json:"foodId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type SubmitReviewRequest struct {
	OrderID     string            `json:"orderId" binding:"required"`
	Rating      int               `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment     string            `json:"comment"`
	FoodReviews []FoodReviewInput `json:"foodReviews"`
}

type UpdatePaymentRequest struct {
	OrderID       string `json:"orderid" binding:"required"`
	PaymentStatus string `json:"paymentstatus"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1"`
}

type DishRequest struct {
	CategoryID  string         `json:"category_id" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Price       int            `json:"price" binding:"required,min=0"`
	ImageURL    string         `json:"image_url"`
	Description string         `json:"description"`
	Calories    int            `json:"calories"`
	PrepTime    int            `json:"prep_time"`
	Ingredients string         `json:"ingredients"`
	AllergyInfo string         `json:"allergy_info"`
	Status      string         `json:"status" binding:"omitempty,oneof='Available' 'Out of Stock' 'Unavailable'"`
	Toppings    []ToppingInput `json:"toppings"`
}

type ToppingInput struct {
	Name  string `json:"name" binding:"required"`
	Price int    `json:"price" binding:"min=0"`
}
