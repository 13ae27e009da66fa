package services

import (
	"context"

	"smartbite/models"
	"smartbite/utils"
)

// DishFinder looks up a dish for purchase checks. Returns (nil, nil) when the
// dish does not exist.
type DishFinder interface {
	FindByID(ctx context.Context, id string) (*models.Dish, error)
}

type CartRepository interface {
	// EnsureCart returns the user's cart id, creating the cart row first if
	// the user has none.
	EnsureCart(ctx context.Context, userID string) (string, error)
	InsertItem(ctx context.Context, item *models.CartItem, toppingIDs []string) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (bool, error)
	DeleteItem(ctx context.Context, itemID string) error
	ClearByUser(ctx context.Context, userID string) error
	ItemsByUser(ctx context.Context, userID string) ([]models.CartLine, error)
}

type CartService struct {
	dishes DishFinder
	carts  CartRepository
}

func NewCartService(dishes DishFinder, carts CartRepository) *CartService {
	return &CartService{dishes: dishes, carts: carts}
}

// AddItem validates the dish, lazily creates the user's cart, and inserts a
// new line with one link row per selected topping.
func (s *CartService) AddItem(ctx context.Context, userID, foodID string, quantity int, toppingIDs []string, note string) (string, error) {
	dish, err := s.dishes.FindByID(ctx, foodID)
	if err != nil {
		return "", err
	}
	if dish == nil {
		return "", ErrDishNotFound
	}

	switch dish.Status {
	case models.DishAvailable:
	case models.DishOutOfStock:
		return "", ErrDishOutOfStock
	default:
		return "", ErrDishDiscontinued
	}

	cartID, err := s.carts.EnsureCart(ctx, userID)
	if err != nil {
		return "", err
	}

	if quantity < 1 {
		quantity = 1
	}

	item := &models.CartItem{
		ID:       utils.NewID("ci"),
		CartID:   cartID,
		FoodID:   foodID,
		Quantity: quantity,
		Note:     note,
	}

	if err := s.carts.InsertItem(ctx, item, toppingIDs); err != nil {
		return "", err
	}
	return item.ID, nil
}

// UpdateQuantity sets a new quantity; zero or below means "remove the line".
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.carts.DeleteItem(ctx, itemID)
	}

	found, err := s.carts.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		return err
	}
	if !found {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	return s.carts.DeleteItem(ctx, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.ClearByUser(ctx, userID)
}

// GetItems returns the cart's lines with dish and topping display data. A
// missing cart is a valid empty state, never an error.
func (s *CartService) GetItems(ctx context.Context, userID string) ([]models.CartLine, error) {
	return s.carts.ItemsByUser(ctx, userID)
}

// Subtotal recomputes the authoritative cart total from the lines; the stored
// carts.subtotal column is display-only.
func Subtotal(lines []models.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}
