package repositories

import (
	"context"

	"smartbite/config"
	"smartbite/models"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) CompletedOrderIDs(ctx context.Context, userID, foodID string) ([]string, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT o.id
		 FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 WHERE o.user_id=$1 AND o.status=$2 AND oi.food_id=$3
		 GROUP BY o.id, o.order_time
		 ORDER BY o.order_time`,
		userID, models.StatusCompleted, foodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ReviewRepository) HasFoodReview(ctx context.Context, orderID, foodID string) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM food_reviews WHERE order_id=$1 AND food_id=$2",
		orderID, foodID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := config.DB.Query(ctx,
		"SELECT id, order_id, food_id, quantity, unit_price FROM order_items WHERE order_id=$1",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.FoodID, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ReviewRepository) InsertOrderReview(ctx context.Context, review *models.OrderReview) error {
	_, err := config.DB.Exec(ctx,
		`INSERT INTO order_reviews (id, order_id, rating, comment, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		review.ID, review.OrderID, review.Rating, review.Comment, review.CreatedAt)
	return err
}

func (r *ReviewRepository) InsertFoodReview(ctx context.Context, review *models.FoodReview) error {
	_, err := config.DB.Exec(ctx,
		`INSERT INTO food_reviews (id, order_id, food_id, rating, comment, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		review.ID, review.OrderID, review.FoodID, review.Rating, review.Comment, review.CreatedAt)
	return err
}
