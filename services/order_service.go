package services

import (
	"context"
	"time"

	"smartbite/models"
	"smartbite/utils"
)

// ShippingFee is the flat delivery charge in currency minor units.
const ShippingFee = 15000

type OrderRepository interface {
	// CartSnapshot returns the user's cart id and its current lines. An
	// absent cart yields ("", nil, nil).
	CartSnapshot(ctx context.Context, userID string) (string, []models.CartLine, error)
	// Create persists the order, its item and topping snapshots, and the
	// payment placeholder, and deletes the cart's items, all in one
	// transaction.
	Create(ctx context.Context, order *models.Order, items []models.OrderItem, toppings []models.OrderItemTopping, payment *models.Payment, cartID string) error
	// Status returns the order's current status code, or ErrOrderNotFound.
	Status(ctx context.Context, orderID string) (int, error)
	// UpdateStatusGuard writes the new status only if the current one still
	// matches, returning the number of rows changed.
	UpdateStatusGuard(ctx context.Context, orderID string, from, to int) (int64, error)
}

type OrderService struct {
	orders OrderRepository
	now    func() time.Time
}

func NewOrderService(orders OrderRepository) *OrderService {
	return &OrderService{orders: orders, now: time.Now}
}

// ComputeFoodAmount derives the food-only portion from a checkout total that
// already includes the shipping fee. Totals at or below the fee are passed
// through unchanged rather than clamped negative.
func ComputeFoodAmount(totalPrice int) int {
	if totalPrice > ShippingFee {
		return totalPrice - ShippingFee
	}
	return totalPrice
}

// PlaceOrder converts the user's cart into an order: item and topping prices
// are snapshotted at their current values, a pending payment is created for
// the full total, and the cart is emptied. The whole conversion commits or
// rolls back as a unit.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, deliveryAddress string, totalPrice int, paymentMethod string) (string, error) {
	cartID, lines, err := s.orders.CartSnapshot(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	if deliveryAddress == "" {
		deliveryAddress = "Not provided"
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	now := s.now()
	order := &models.Order{
		ID:              utils.NewID("ord"),
		UserID:          userID,
		FoodAmount:      ComputeFoodAmount(totalPrice),
		ShippingFee:     ShippingFee,
		Status:          models.StatusPending,
		DeliveryAddress: deliveryAddress,
		OrderTime:       now,
	}

	items := make([]models.OrderItem, 0, len(lines))
	toppings := []models.OrderItemTopping{}
	for _, line := range lines {
		item := models.OrderItem{
			ID:        utils.NewID("oi"),
			OrderID:   order.ID,
			FoodID:    line.FoodID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		items = append(items, item)

		for _, t := range line.Toppings {
			toppings = append(toppings, models.OrderItemTopping{
				ID:          utils.NewID("ot"),
				OrderItemID: item.ID,
				ToppingID:   t.ID,
				Price:       t.Price,
			})
		}
	}

	payment := &models.Payment{
		ID:          utils.NewID("pay"),
		OrderID:     order.ID,
		Amount:      totalPrice,
		Method:      paymentMethod,
		Status:      models.PaymentPending,
		PaymentDate: now,
	}

	if err := s.orders.Create(ctx, order, items, toppings, payment, cartID); err != nil {
		return "", err
	}
	return order.ID, nil
}

// AdvanceStatus moves an order one step forward in its lifecycle. Steps into
// accepted, preparing and delivering require the admin role; the final step
// to completed may also be taken by the customer. Skipping states or moving
// backwards is rejected, and a lost race against a concurrent transition
// surfaces as ErrInvalidTransition.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, next int, actorRole string) (int, error) {
	if !models.ValidStatus(next) {
		return 0, ErrInvalidTransition
	}

	if next != models.StatusCompleted && actorRole != "admin" {
		return 0, ErrNotAllowed
	}

	current, err := s.orders.Status(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if !models.CanAdvance(current, next) {
		return 0, ErrInvalidTransition
	}

	affected, err := s.orders.UpdateStatusGuard(ctx, orderID, current, next)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrInvalidTransition
	}
	return next, nil
}
