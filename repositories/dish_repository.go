package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartbite/config"
	"smartbite/models"
)

type DishRepository struct{}

func NewDishRepository() *DishRepository {
	return &DishRepository{}
}

// FindByID returns (nil, nil) when the dish does not exist.
func (r *DishRepository) FindByID(ctx context.Context, id string) (*models.Dish, error) {
	var d models.Dish
	err := config.DB.QueryRow(ctx,
		`SELECT id, category_id, name, price, image_url, description, calories,
		        prep_time, ingredients, allergy_info, status, created_at, updated_at
		 FROM food_items WHERE id=$1`, id).
		Scan(&d.ID, &d.CategoryID, &d.Name, &d.Price, &d.ImageURL, &d.Description,
			&d.Calories, &d.PrepTime, &d.Ingredients, &d.AllergyInfo, &d.Status,
			&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) Toppings(ctx context.Context, foodID string) ([]models.Topping, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT t.id, t.name, t.price
		 FROM food_toppings ft
		 JOIN topping_options t ON ft.topping_id = t.id
		 WHERE ft.food_id=$1 ORDER BY t.name`, foodID)
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
