package controllers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"smartbite/config"
	"smartbite/models"
	"smartbite/services"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// GetReviews godoc
// @Summary Review queries
// @Description Multiplexed review reads: eligibility check (action=check-eligibility&foodid=),
// @Description per-dish listing (foodid=), per-order review state (orderid=), or the full admin listing.
// @Tags Reviews
// @Produce json
// @Param action query string false "check-eligibility"
// @Param foodid query string false "Dish ID"
// @Param orderid query string false "Order ID"
// @Param userid query string false "User ID for eligibility, defaults to the authenticated user"
// @Success 200 {object} models.Response
// @Router /reviews [get]
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	ctx := context.Background()
	action := c.Query("action")
	foodID := c.Query("foodid")
	orderID := c.Query("orderid")

	if action == "check-eligibility" && foodID != "" {
		userID := c.Query("userid")
		if userID == "" {
			userID = c.GetString("user_id")
		}
		if userID == "" {
			c.JSON(200, gin.H{"eligible": false, "message": "Not logged in"})
			return
		}

		result, err := ctrl.reviews.CheckEligibility(ctx, userID, foodID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Eligibility check failed", "error": err.Error()})
			return
		}
		c.JSON(200, result)
		return
	}

	if foodID != "" {
		ctrl.listFoodReviews(c, foodID)
		return
	}

	if orderID != "" {
		ctrl.orderReviewState(c, orderID)
		return
	}

	ctrl.listAllReviews(c)
}

func (ctrl *ReviewController) listFoodReviews(c *gin.Context, foodID string) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT fr.id, fr.order_id, fr.food_id, fr.rating, fr.comment, fr.created_at, u.full_name
		 FROM food_reviews fr
		 JOIN orders o ON fr.order_id = o.id
		 JOIN users u ON o.user_id = u.id
		 WHERE fr.food_id=$1
		 ORDER BY fr.created_at DESC`, foodID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get reviews", "error": err.Error()})
		return
	}
	defer rows.Close()

	reviews := []models.FoodReview{}
	for rows.Next() {
		var r models.FoodReview
		err := rows.Scan(&r.ID, &r.OrderID, &r.FoodID, &r.Rating, &r.Comment, &r.CreatedAt, &r.ReviewerName)
		if err != nil {
			continue
		}
		reviews = append(reviews, r)
	}

	c.JSON(200, gin.H{"success": true, "reviews": reviews})
}

func (ctrl *ReviewController) orderReviewState(c *gin.Context, orderID string) {
	ctx := context.Background()

	var orderReview models.OrderReview
	hasOrderReview := true
	err := config.DB.QueryRow(ctx,
		"SELECT id, order_id, rating, comment, created_at FROM order_reviews WHERE order_id=$1", orderID).
		Scan(&orderReview.ID, &orderReview.OrderID, &orderReview.Rating, &orderReview.Comment, &orderReview.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		hasOrderReview = false
	} else if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get reviews", "error": err.Error()})
		return
	}

	rows, err := config.DB.Query(ctx,
		"SELECT id, order_id, food_id, rating, comment, created_at FROM food_reviews WHERE order_id=$1", orderID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get reviews", "error": err.Error()})
		return
	}
	defer rows.Close()

	foodReviews := []models.FoodReview{}
	for rows.Next() {
		var r models.FoodReview
		if err := rows.Scan(&r.ID, &r.OrderID, &r.FoodID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			continue
		}
		foodReviews = append(foodReviews, r)
	}

	response := gin.H{
		"success":     true,
		"hasReviewed": hasOrderReview || len(foodReviews) > 0,
		"foodReviews": foodReviews,
	}
	if hasOrderReview {
		response["orderReview"] = orderReview
	} else {
		response["orderReview"] = nil
	}

	c.JSON(200, response)
}

func (ctrl *ReviewController) listAllReviews(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT fr.id, fr.order_id, fr.food_id, fr.rating, fr.comment, fr.created_at,
		        u.full_name, f.name, 'food' AS review_type
		 FROM food_reviews fr
		 JOIN orders o ON fr.order_id = o.id
		 JOIN users u ON o.user_id = u.id
		 JOIN food_items f ON fr.food_id = f.id
		 UNION ALL
		 SELECT orv.id, orv.order_id, '', orv.rating, orv.comment, orv.created_at,
		        u.full_name, '', 'order' AS review_type
		 FROM order_reviews orv
		 JOIN orders o ON orv.order_id = o.id
		 JOIN users u ON o.user_id = u.id
		 ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get reviews", "error": err.Error()})
		return
	}
	defer rows.Close()

	reviews := []gin.H{}
	for rows.Next() {
		var r models.FoodReview
		var reviewType string
		err := rows.Scan(&r.ID, &r.OrderID, &r.FoodID, &r.Rating, &r.Comment, &r.CreatedAt,
			&r.ReviewerName, &r.FoodName, &reviewType)
		if err != nil {
			continue
		}
		reviews = append(reviews, gin.H{
			"reviewid":      r.ID,
			"orderid":       r.OrderID,
			"foodid":        r.FoodID,
			"rating":        r.Rating,
			"comment":       r.Comment,
			"createdat":     r.CreatedAt,
			"reviewer_name": r.ReviewerName,
			"food_name":     r.FoodName,
			"type":          reviewType,
		})
	}

	c.JSON(200, gin.H{"success": true, "reviews": reviews})
}

// SubmitReview godoc
// @Summary Submit reviews
// @Description Insert an optional order-level review plus per-dish reviews for one order
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SubmitReviewRequest true "Review data"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /reviews [post]
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Missing orderId"})
		return
	}

	if err := ctrl.reviews.Submit(context.Background(), req); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(409, gin.H{"success": false, "message": "This order or dish has already been reviewed"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to submit review", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Review submitted"})
}
