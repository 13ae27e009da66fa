package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartbite/config"
	"smartbite/models"
	"smartbite/services"
)

type OrderRepository struct {
	carts *CartRepository
}

func NewOrderRepository(carts *CartRepository) *OrderRepository {
	return &OrderRepository{carts: carts}
}

func (r *OrderRepository) CartSnapshot(ctx context.Context, userID string) (string, []models.CartLine, error) {
	var cartID string
	err := config.DB.QueryRow(ctx, "SELECT id FROM carts WHERE user_id=$1", userID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	lines, err := r.carts.ItemsByUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return cartID, lines, nil
}

// Create runs the whole cart-to-order conversion in one transaction: the
// order row, item and topping price snapshots, the pending payment, and the
// cart clearing all commit together or not at all.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem, toppings []models.OrderItemTopping, payment *models.Payment, cartID string) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, food_amount, shipping_fee, status, delivery_address, order_time)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		order.ID, order.UserID, order.FoodAmount, order.ShippingFee,
		order.Status, order.DeliveryAddress, order.OrderTime)
	if err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, food_id, quantity, unit_price)
			 VALUES ($1,$2,$3,$4,$5)`,
			item.ID, item.OrderID, item.FoodID, item.Quantity, item.UnitPrice)
		if err != nil {
			return err
		}
	}

	for _, t := range toppings {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_item_toppings (id, order_item_id, topping_id, price)
			 VALUES ($1,$2,$3,$4)`,
			t.ID, t.OrderItemID, t.ToppingID, t.Price)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO payments (id, order_id, amount, method, status, payment_date)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		payment.ID, payment.OrderID, payment.Amount, payment.Method,
		payment.Status, payment.PaymentDate)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM cart_item_toppings WHERE cart_item_id IN (
		    SELECT id FROM cart_items WHERE cart_id=$1)`, cartID)
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id=$1", cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) Status(ctx context.Context, orderID string) (int, error) {
	var status int
	err := config.DB.QueryRow(ctx, "SELECT status FROM orders WHERE id=$1", orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, services.ErrOrderNotFound
	}
	if err != nil {
		return 0, err
	}
	return status, nil
}

// UpdateStatusGuard is a compare-and-swap on the status column; a concurrent
// transition makes the WHERE clause miss and reports zero rows.
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, orderID string, from, to int) (int64, error) {
	tag, err := config.DB.Exec(ctx,
		"UPDATE orders SET status=$1 WHERE id=$2 AND status=$3", to, orderID, from)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
