package handlers

import (
	"net/http"

	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminGetAllOrders returns all orders with a status summary and the
// revenue from delivered ones — admin only
func AdminGetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Preload("User").Preload("Courier")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		if courierID := c.Query("courier_id"); courierID != "" {
			query = query.Where("courier_id = ?", courierID)
		}

		var orders []models.DeliveryOrder
		query.Order("created_at desc").Find(&orders)

		summary := map[string]int{}
		var totalRevenue float64
		for _, o := range orders {
			summary[string(o.Status)]++
			if o.Status == models.StatusDelivered {
				totalRevenue += o.TotalAmount
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"order_summary": summary,
			"total_revenue": totalRevenue,
			"count":         len(orders),
			"orders":        orders,
		})
	}
}

// AdminGetAllUsers returns all users, optionally filtered by role — admin only
func AdminGetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Session(&gorm.Session{})
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		var users []models.User
		query.Find(&users)
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
	}
}

type AdminMessageRequest struct {
	CourierID *uint  `json:"courier_id"` // nil broadcasts to every courier
	Title     string `json:"title"`
	Text      string `json:"text" binding:"required"`
}

// AdminSendMessage writes a broadcast or direct courier inbox message
func AdminSendMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.CourierID != nil {
			var user models.User
			if err := db.First(&user, *req.CourierID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Courier not found"})
				return
			}
		}

		msg := models.CourierMessage{
			CourierID: req.CourierID,
			Title:     req.Title,
			Text:      req.Text,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "courier_message": msg})
	}
}
