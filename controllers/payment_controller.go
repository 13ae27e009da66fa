package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"smartbite/config"
	"smartbite/models"
)

type PaymentController struct{}

func NewPaymentController() *PaymentController {
	return &PaymentController{}
}

// UpdatePayment godoc
// @Summary Update payment status
// @Description Mark an order's payment record, independently of the order status
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdatePaymentRequest true "Payment update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /payments [post]
func (ctrl *PaymentController) UpdatePayment(c *gin.Context) {
	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Missing orderid"})
		return
	}

	status := req.PaymentStatus
	if status == "" {
		status = models.PaymentCompleted
	}

	tag, err := config.DB.Exec(context.Background(),
		"UPDATE payments SET status=$1, payment_date=$2 WHERE order_id=$3",
		status, time.Now(), req.OrderID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update payment", "error": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Payment not found"})
		return
	}

	// The order status is deliberately untouched: confirming the order is a
	// separate admin action.
	c.JSON(200, gin.H{"success": true, "message": "Payment updated"})
}
