package controllers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"smartbite/models"
	"smartbite/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// AddToCart godoc
// @Summary Add dish to cart
// @Description Add a dish with optional toppings and a note to the user's cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Cart item"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Missing userId or foodId"})
		return
	}

	itemID, err := ctrl.carts.AddItem(context.Background(), req.UserID, req.FoodID,
		req.Quantity, req.SelectedExtras, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDishNotFound):
			c.JSON(404, gin.H{"success": false, "message": "Dish does not exist"})
		case errors.Is(err, services.ErrDishOutOfStock):
			c.JSON(400, gin.H{"success": false, "message": "This dish is currently out of stock"})
		case errors.Is(err, services.ErrDishDiscontinued):
			c.JSON(400, gin.H{"success": false, "message": "This dish is no longer sold"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to add to cart", "error": err.Error()})
		}
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Added to cart", "data": gin.H{"cartItemId": itemID}})
}

// GetCart godoc
// @Summary Get cart items
// @Description List the user's cart with dish and topping data. An absent cart is an empty list.
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"success": false, "message": "Missing userId"})
		return
	}

	lines, err := ctrl.carts.GetItems(context.Background(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get cart", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved",
		"data": gin.H{
			"items":    lines,
			"subtotal": services.Subtotal(lines),
		},
	})
}

// UpdateCartItem godoc
// @Summary Update cart item quantity
// @Description Set a new quantity; zero or less removes the item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/{itemId} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	err := ctrl.carts.UpdateQuantity(context.Background(), itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart item", "error": err.Error()})
		return
	}

	if req.Quantity <= 0 {
		c.JSON(200, gin.H{"success": true, "message": "Item removed"})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Quantity updated"})
}

// RemoveCartItem godoc
// @Summary Remove cart item
// @Description Delete one cart item and its topping links
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} models.Response
// @Router /cart/{itemId} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	itemID := c.Param("itemId")

	if err := ctrl.carts.RemoveItem(context.Background(), itemID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to remove item", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Item removed"})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Delete all of the user's cart items, keeping the cart row
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"success": false, "message": "Missing userId"})
		return
	}

	if err := ctrl.carts.Clear(context.Background(), userID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to clear cart", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}
