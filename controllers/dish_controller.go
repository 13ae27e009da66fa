package controllers

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartbite/config"
	"smartbite/libs"
	"smartbite/models"
	"smartbite/repositories"
	"smartbite/utils"
)

type DishController struct {
	dishes *repositories.DishRepository
}

func NewDishController(dishes *repositories.DishRepository) *DishController {
	return &DishController{dishes: dishes}
}

const dishListCacheKey = "dishes_list"

func invalidateDishCache() {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(context.Background(), dishListCacheKey)
}

var nonSlugChars = regexp.MustCompile(`[^\w-]+`)

func toppingSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	return "top-" + nonSlugChars.ReplaceAllString(s, "")
}

// GetAllCategories godoc
// @Summary Get all categories
// @Description Get list of all menu categories
// @Tags Dishes
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *DishController) GetAllCategories(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(), "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get categories", "error": err.Error()})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		rows.Scan(&cat.ID, &cat.Name)
		categories = append(categories, cat)
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// SeedCategories godoc
// @Summary Seed default categories
// @Description Insert the default menu categories if missing (Admin)
// @Tags Admin - Dishes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/categories/seed [post]
func (ctrl *DishController) SeedCategories(c *gin.Context) {
	defaults := []string{"Main Dishes", "Salads", "Soups", "Desserts", "Drinks"}

	for _, name := range defaults {
		_, err := config.DB.Exec(context.Background(),
			"INSERT INTO categories (id, name) VALUES ($1,$2) ON CONFLICT (name) DO NOTHING",
			utils.NewID("cat"), name)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to seed categories", "error": err.Error()})
			return
		}
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories seeded"})
}

// GetAllDishes godoc
// @Summary Get all dishes
// @Description Get the full menu with category names and review aggregates
// @Tags Dishes
// @Produce json
// @Success 200 {object} models.Response
// @Router /dishes [get]
func (ctrl *DishController) GetAllDishes(c *gin.Context) {
	ctx := context.Background()

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, dishListCacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	rows, err := config.DB.Query(ctx,
		`SELECT f.id, f.category_id, COALESCE(c.name,''), f.name, f.price, f.image_url,
		        f.description, f.calories, f.prep_time, f.ingredients, f.allergy_info,
		        f.status, f.created_at, f.updated_at,
		        COALESCE(r.review_count, 0), COALESCE(r.avg_rating, 5)
		 FROM food_items f
		 LEFT JOIN categories c ON f.category_id = c.id
		 LEFT JOIN (
		     SELECT food_id, COUNT(*) AS review_count, ROUND(AVG(rating)::numeric, 1) AS avg_rating
		     FROM food_reviews GROUP BY food_id
		 ) r ON r.food_id = f.id
		 ORDER BY f.created_at DESC`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get dishes", "error": err.Error()})
		return
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var d models.Dish
		err := rows.Scan(&d.ID, &d.CategoryID, &d.CategoryName, &d.Name, &d.Price, &d.ImageURL,
			&d.Description, &d.Calories, &d.PrepTime, &d.Ingredients, &d.AllergyInfo,
			&d.Status, &d.CreatedAt, &d.UpdatedAt, &d.ReviewCount, &d.Rating)
		if err != nil {
			continue
		}
		dishes = append(dishes, d)
	}

	response := gin.H{"success": true, "message": "Dishes retrieved", "data": dishes}

	if config.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		config.RedisClient.Set(ctx, dishListCacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// GetDishByID godoc
// @Summary Get dish detail
// @Description Get one dish with its toppings and rating statistics
// @Tags Dishes
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /dishes/{id} [get]
func (ctrl *DishController) GetDishByID(c *gin.Context) {
	ctx := context.Background()
	id := c.Param("id")

	dish, err := ctrl.dishes.FindByID(ctx, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get dish", "error": err.Error()})
		return
	}
	if dish == nil {
		c.JSON(404, gin.H{"success": false, "message": "Dish not found"})
		return
	}

	toppings, err := ctrl.dishes.Toppings(ctx, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get toppings", "error": err.Error()})
		return
	}
	dish.Toppings = toppings

	var reviewCount int
	var avgRating float64
	config.DB.QueryRow(ctx,
		"SELECT COUNT(*), COALESCE(ROUND(AVG(rating)::numeric, 1), 5) FROM food_reviews WHERE food_id=$1", id).
		Scan(&reviewCount, &avgRating)
	dish.ReviewCount = reviewCount
	dish.Rating = avgRating

	c.JSON(200, gin.H{"success": true, "message": "Dish retrieved", "data": dish})
}

// CreateDish godoc
// @Summary Create dish
// @Description Create a new dish with optional toppings (Admin)
// @Tags Admin - Dishes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.DishRequest true "Dish data"
// @Success 201 {object} models.Response
// @Router /admin/dishes [post]
func (ctrl *DishController) CreateDish(c *gin.Context) {
	var req models.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DishAvailable
	}

	ctx := context.Background()
	dishID := utils.NewID("food")
	now := time.Now()

	_, err := config.DB.Exec(ctx,
		`INSERT INTO food_items (id, category_id, name, price, image_url, description,
		                         calories, prep_time, ingredients, allergy_info, status,
		                         created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		dishID, req.CategoryID, req.Name, req.Price, req.ImageURL, req.Description,
		req.Calories, req.PrepTime, req.Ingredients, req.AllergyInfo, status, now, now)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create dish", "error": err.Error()})
		return
	}

	if err := ctrl.linkToppings(ctx, dishID, req.Toppings); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save toppings", "error": err.Error()})
		return
	}

	invalidateDishCache()

	c.JSON(201, gin.H{"success": true, "message": "Dish created", "data": gin.H{"id": dishID}})
}

// UpdateDish godoc
// @Summary Update dish
// @Description Update a dish and replace its topping links (Admin)
// @Tags Admin - Dishes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Dish ID"
// @Param request body models.DishRequest true "Dish data"
// @Success 200 {object} models.Response
// @Router /admin/dishes/{id} [put]
func (ctrl *DishController) UpdateDish(c *gin.Context) {
	id := c.Param("id")

	var req models.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DishAvailable
	}

	ctx := context.Background()
	tag, err := config.DB.Exec(ctx,
		`UPDATE food_items SET category_id=$1, name=$2, price=$3, image_url=$4,
		        description=$5, calories=$6, prep_time=$7, ingredients=$8,
		        allergy_info=$9, status=$10, updated_at=$11
		 WHERE id=$12`,
		req.CategoryID, req.Name, req.Price, req.ImageURL, req.Description,
		req.Calories, req.PrepTime, req.Ingredients, req.AllergyInfo, status,
		time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update dish", "error": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Dish not found"})
		return
	}

	if _, err := config.DB.Exec(ctx, "DELETE FROM food_toppings WHERE food_id=$1", id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update toppings", "error": err.Error()})
		return
	}
	if err := ctrl.linkToppings(ctx, id, req.Toppings); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update toppings", "error": err.Error()})
		return
	}

	invalidateDishCache()

	c.JSON(200, gin.H{"success": true, "message": "Dish updated"})
}

func (ctrl *DishController) linkToppings(ctx context.Context, dishID string, toppings []models.ToppingInput) error {
	for _, t := range toppings {
		if t.Name == "" {
			continue
		}
		toppingID := toppingSlug(t.Name)

		_, err := config.DB.Exec(ctx,
			`INSERT INTO topping_options (id, name, price) VALUES ($1,$2,$3)
			 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, price=EXCLUDED.price`,
			toppingID, t.Name, t.Price)
		if err != nil {
			return err
		}

		_, err = config.DB.Exec(ctx,
			`INSERT INTO food_toppings (food_id, topping_id) VALUES ($1,$2)
			 ON CONFLICT (food_id, topping_id) DO NOTHING`,
			dishID, toppingID)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteDish godoc
// @Summary Discontinue dish
// @Description Mark a dish as no longer sold; historical orders keep it (Admin)
// @Tags Admin - Dishes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} models.Response
// @Router /admin/dishes/{id} [delete]
func (ctrl *DishController) DeleteDish(c *gin.Context) {
	id := c.Param("id")

	// Soft delete only: order items reference dishes, so rows are never
	// removed, just taken off sale.
	tag, err := config.DB.Exec(context.Background(),
		"UPDATE food_items SET status=$1, updated_at=$2 WHERE id=$3",
		models.DishUnavailable, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update dish", "error": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Dish not found"})
		return
	}

	invalidateDishCache()

	c.JSON(200, gin.H{"success": true, "message": "Dish marked as no longer sold"})
}

// UploadDishImage godoc
// @Summary Upload dish image
// @Description Upload a dish image to Cloudinary (Admin)
// @Tags Admin - Dishes
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Dish ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Router /admin/dishes/{id}/image [post]
func (ctrl *DishController) UploadDishImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image required"})
		return
	}

	localPath, err := libs.SaveUploadedImage(c, file, config.AppConfig.UploadDir)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	imageURL, err := libs.UploadDishImage(localPath)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Upload failed", "error": err.Error()})
		return
	}

	id := c.Param("id")
	ctx := context.Background()

	var oldImageURL string
	config.DB.QueryRow(ctx, "SELECT image_url FROM food_items WHERE id=$1", id).Scan(&oldImageURL)

	tag, err := config.DB.Exec(ctx,
		"UPDATE food_items SET image_url=$1, updated_at=$2 WHERE id=$3",
		imageURL, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save image", "error": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Dish not found"})
		return
	}

	// Best effort: drop the replaced asset so Cloudinary doesn't accumulate
	// orphans. The dish already points at the new image either way.
	if publicID := libs.PublicIDFromURL(oldImageURL); publicID != "" {
		if err := libs.DeleteDishImage(publicID); err != nil {
			log.Println("Failed to remove replaced dish image:", err)
		}
	}

	invalidateDishCache()

	c.JSON(200, gin.H{"success": true, "message": "Image uploaded", "data": gin.H{"image_url": imageURL}})
}
