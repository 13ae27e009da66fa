package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartbite/config"
	"smartbite/models"
	"smartbite/utils"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) EnsureCart(ctx context.Context, userID string) (string, error) {
	var cartID string
	err := config.DB.QueryRow(ctx, "SELECT id FROM carts WHERE user_id=$1", userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	cartID = utils.NewID("cart")
	_, err = config.DB.Exec(ctx,
		"INSERT INTO carts (id, user_id, subtotal) VALUES ($1, $2, 0)",
		cartID, userID)
	if err != nil {
		return "", err
	}
	return cartID, nil
}

func (r *CartRepository) InsertItem(ctx context.Context, item *models.CartItem, toppingIDs []string) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO cart_items (id, cart_id, food_id, quantity, note) VALUES ($1,$2,$3,$4,$5)",
		item.ID, item.CartID, item.FoodID, item.Quantity, item.Note)
	if err != nil {
		return err
	}

	for _, toppingID := range toppingIDs {
		_, err = tx.Exec(ctx,
			"INSERT INTO cart_item_toppings (id, cart_item_id, topping_id) VALUES ($1,$2,$3)",
			utils.NewID("ct"), item.ID, toppingID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) (bool, error) {
	tag, err := config.DB.Exec(ctx,
		"UPDATE cart_items SET quantity=$1 WHERE id=$2", quantity, itemID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID string) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM cart_item_toppings WHERE cart_item_id=$1", itemID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, "DELETE FROM cart_items WHERE id=$1", itemID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ClearByUser empties the user's cart but keeps the cart row itself.
func (r *CartRepository) ClearByUser(ctx context.Context, userID string) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM cart_item_toppings WHERE cart_item_id IN (
		    SELECT ci.id FROM cart_items ci
		    JOIN carts c ON ci.cart_id = c.id
		    WHERE c.user_id=$1)`, userID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id IN (
		    SELECT id FROM carts WHERE user_id=$1)`, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CartRepository) ItemsByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT ci.id, ci.cart_id, ci.food_id, ci.quantity, ci.note, ci.created_at,
		        f.name, f.image_url, f.price
		 FROM cart_items ci
		 JOIN carts c ON ci.cart_id = c.id
		 JOIN food_items f ON ci.food_id = f.id
		 WHERE c.user_id=$1
		 ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		err := rows.Scan(&l.ID, &l.CartID, &l.FoodID, &l.Quantity, &l.Note, &l.CreatedAt,
			&l.FoodName, &l.ImageURL, &l.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lines {
		toppings, err := r.itemToppings(ctx, lines[i].ID)
		if err != nil {
			return nil, err
		}
		lines[i].Toppings = toppings
	}
	return lines, nil
}

func (r *CartRepository) itemToppings(ctx context.Context, itemID string) ([]models.Topping, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT t.id, t.name, t.price
		 FROM cart_item_toppings cit
		 JOIN topping_options t ON cit.topping_id = t.id
		 WHERE cit.cart_item_id=$1`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	toppings := []models.Topping{}
	for rows.Next() {
		var t models.Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Price); err != nil {
			return nil, err
		}
		toppings = append(toppings, t)
	}
	return toppings, rows.Err()
}
