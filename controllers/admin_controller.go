package controllers

import (
	"github.com/gin-gonic/gin"

	"smartbite/config"
)

type AdminController struct{}

func NewAdminController() *AdminController {
	return &AdminController{}
}

type customerStat struct {
	UserID     string `json:"userId"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	OrderCount int    `json:"orderCount"`
	TotalSpent int    `json:"totalSpent"`
}

type salesPoint struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int    `json:"revenue"`
}

// GetStats godoc
// @Summary Admin dashboard statistics
// @Description Revenue totals, top customers by spend and a sales trend over the last active days
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/stats [get]
func (ctrl *AdminController) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := config.DB.Query(ctx, `
		SELECT u.id, u.full_name, u.email,
		       COUNT(o.id) AS order_count,
		       COALESCE(SUM(o.food_amount + o.shipping_fee), 0) AS total_spent
		FROM users u
		JOIN orders o ON o.user_id = u.id
		GROUP BY u.id, u.full_name, u.email
		ORDER BY total_spent DESC`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch statistics"})
		return
	}
	defer rows.Close()

	customers := []customerStat{}
	totalRevenue := 0
	totalOrders := 0
	for rows.Next() {
		var cs customerStat
		if err := rows.Scan(&cs.UserID, &cs.FullName, &cs.Email, &cs.OrderCount, &cs.TotalSpent); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to read statistics"})
			return
		}
		customers = append(customers, cs)
		totalRevenue += cs.TotalSpent
		totalOrders += cs.OrderCount
	}

	trendRows, err := config.DB.Query(ctx, `
		SELECT TO_CHAR(order_time::date, 'YYYY-MM-DD') AS day,
		       COUNT(id),
		       COALESCE(SUM(food_amount + shipping_fee), 0)
		FROM orders
		GROUP BY day
		ORDER BY day DESC
		LIMIT 7`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch sales trend"})
		return
	}
	defer trendRows.Close()

	trend := []salesPoint{}
	for trendRows.Next() {
		var p salesPoint
		if err := trendRows.Scan(&p.Date, &p.Orders, &p.Revenue); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to read sales trend"})
			return
		}
		trend = append(trend, p)
	}
	// reverse to chronological order for charting
	for i, j := 0, len(trend)-1; i < j; i, j = i+1, j-1 {
		trend[i], trend[j] = trend[j], trend[i]
	}

	averageOrderValue := 0
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / totalOrders
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Statistics fetched successfully",
		"data": gin.H{
			"totalRevenue":      totalRevenue,
			"totalOrders":       totalOrders,
			"totalCustomers":    len(customers),
			"averageOrderValue": averageOrderValue,
			"topCustomers":      customers,
			"salesTrend":        trend,
		},
	})
}
