package controllers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"smartbite/config"
	"smartbite/models"
	"smartbite/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder godoc
// @Summary Place order
// @Description Convert the user's cart into an order with snapshot prices and a pending payment
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Checkout data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Missing userid"})
		return
	}

	orderID, err := ctrl.orders.PlaceOrder(context.Background(), req.UserID,
		req.ShippingAddress, req.TotalPrice, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(400, gin.H{"success": false, "message": "No items in cart"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to create order", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "orderId": orderID})
}

// GetOrders godoc
// @Summary List orders
// @Description List orders newest first, optionally filtered to one user
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param userid query string false "Filter by user"
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	ctx := context.Background()
	userID := c.Query("userid")

	query := `SELECT o.id, o.user_id, o.food_amount, o.shipping_fee, o.status,
	                 o.delivery_address, o.order_time,
	                 u.full_name, u.email, u.phone
	          FROM orders o
	          JOIN users u ON o.user_id = u.id`
	args := []interface{}{}
	if userID != "" {
		query += " WHERE o.user_id=$1"
		args = append(args, userID)
	}
	query += " ORDER BY o.order_time DESC"

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get orders", "error": err.Error()})
		return
	}
	defer rows.Close()

	type orderRow struct {
		order models.Order
		name  string
		email string
		phone string
	}
	orderRows := []orderRow{}
	for rows.Next() {
		var r orderRow
		err := rows.Scan(&r.order.ID, &r.order.UserID, &r.order.FoodAmount, &r.order.ShippingFee,
			&r.order.Status, &r.order.DeliveryAddress, &r.order.OrderTime,
			&r.name, &r.email, &r.phone)
		if err != nil {
			continue
		}
		orderRows = append(orderRows, r)
	}
	rows.Close()

	orders := []gin.H{}
	for _, r := range orderRows {
		payload, err := ctrl.orderPayload(ctx, r.order, r.name, r.email, r.phone)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load order details", "error": err.Error()})
			return
		}
		orders = append(orders, payload)
	}

	c.JSON(200, gin.H{"success": true, "orders": orders})
}

// GetOrderByID godoc
// @Summary Get order
// @Description Fetch one order with its items, toppings, payment and customer
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{orderId} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	ctx := context.Background()
	// The tracking page may pass the display form "#ord-...".
	orderID := strings.TrimPrefix(c.Param("orderId"), "#")

	var order models.Order
	var name, email, phone string
	err := config.DB.QueryRow(ctx,
		`SELECT o.id, o.user_id, o.food_amount, o.shipping_fee, o.status,
		        o.delivery_address, o.order_time,
		        u.full_name, u.email, u.phone
		 FROM orders o
		 JOIN users u ON o.user_id = u.id
		 WHERE o.id=$1`, orderID).
		Scan(&order.ID, &order.UserID, &order.FoodAmount, &order.ShippingFee, &order.Status,
			&order.DeliveryAddress, &order.OrderTime, &name, &email, &phone)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get order", "error": err.Error()})
		return
	}

	payload, err := ctrl.orderPayload(ctx, order, name, email, phone)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load order details", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "order": payload})
}

func (ctrl *OrderController) orderPayload(ctx context.Context, order models.Order, name, email, phone string) (gin.H, error) {
	itemRows, err := config.DB.Query(ctx,
		`SELECT oi.id, oi.food_id, oi.quantity, oi.unit_price, f.name, f.image_url
		 FROM order_items oi
		 JOIN food_items f ON oi.food_id = f.id
		 WHERE oi.order_id=$1`, order.ID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	type itemRow struct {
		id, foodID, foodName, imageURL string
		quantity, unitPrice            int
	}
	itemList := []itemRow{}
	for itemRows.Next() {
		var it itemRow
		err := itemRows.Scan(&it.id, &it.foodID, &it.quantity, &it.unitPrice, &it.foodName, &it.imageURL)
		if err != nil {
			return nil, err
		}
		itemList = append(itemList, it)
	}
	itemRows.Close()

	items := []gin.H{}
	for _, it := range itemList {
		toppingRows, err := config.DB.Query(ctx,
			`SELECT ot.topping_id, ot.price, t.name
			 FROM order_item_toppings ot
			 JOIN topping_options t ON ot.topping_id = t.id
			 WHERE ot.order_item_id=$1`, it.id)
		if err != nil {
			return nil, err
		}

		toppings := []gin.H{}
		for toppingRows.Next() {
			var toppingID, toppingName string
			var price int
			if err := toppingRows.Scan(&toppingID, &price, &toppingName); err != nil {
				toppingRows.Close()
				return nil, err
			}
			toppings = append(toppings, gin.H{
				"toppingid":   toppingID,
				"toppingname": toppingName,
				"price":       price,
			})
		}
		toppingRows.Close()

		items = append(items, gin.H{
			"orderitemid": it.id,
			"foodid":      it.foodID,
			"foodname":    it.foodName,
			"foodimage":   it.imageURL,
			"quantity":    it.quantity,
			"unitprice":   it.unitPrice,
			"toppings":    toppings,
		})
	}

	var payment gin.H
	var pay models.Payment
	err = config.DB.QueryRow(ctx,
		`SELECT id, order_id, amount, method, status, payment_date
		 FROM payments WHERE order_id=$1`, order.ID).
		Scan(&pay.ID, &pay.OrderID, &pay.Amount, &pay.Method, &pay.Status, &pay.PaymentDate)
	if err == nil {
		payment = gin.H{
			"paymentid":     pay.ID,
			"amount":        pay.Amount,
			"paymentmethod": pay.Method,
			"paymentstatus": pay.Status,
			"paymentdate":   pay.PaymentDate,
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return gin.H{
		"orderid":         order.ID,
		"userid":          order.UserID,
		"foodamount":      order.FoodAmount,
		"shippingfee":     order.ShippingFee,
		"finalamount":     order.FoodAmount + order.ShippingFee,
		"orderstatus":     order.Status,
		"statusname":      models.StatusName(order.Status),
		"deliveryaddress": order.DeliveryAddress,
		"ordertime":       order.OrderTime,
		"orderitems":      items,
		"payment":         payment,
		"user": gin.H{
			"fullname":    name,
			"email":       email,
			"phonenumber": phone,
		},
	}, nil
}

// UpdateOrderStatus godoc
// @Summary Advance order status
// @Description Move the order one step forward in its lifecycle. Status may be a name or a code 1-5.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param request body object true "New status"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{orderId} [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := strings.TrimPrefix(c.Param("orderId"), "#")

	var body struct {
		Status interface{} `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Status is required"})
		return
	}

	var next int
	switch v := body.Status.(type) {
	case float64:
		next = int(v)
	case string:
		next = models.StatusFromName(v)
	}
	if !models.ValidStatus(next) {
		c.JSON(400, gin.H{"success": false, "message": "Unknown status"})
		return
	}

	role := c.GetString("user_role")
	updated, err := ctrl.orders.AdvanceStatus(context.Background(), orderID, next, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		case errors.Is(err, services.ErrNotAllowed):
			c.JSON(403, gin.H{"success": false, "message": "Only admins may perform this transition"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(409, gin.H{"success": false, "message": "Invalid status transition"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to update status", "error": err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"success": true, "updatedStatus": updated})
}
