package handlers

import (
	"fmt"
	"net/http"
	"time"

	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	Address      string `json:"address" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	Notes        string `json:"notes"`
}

// newOrderCode derives a human-readable identifier from the current time,
// with a random suffix so two orders in the same second never collide.
func newOrderCode(now time.Time) string {
	return fmt.Sprintf("PH-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}

// CreateOrder creates a delivery order plus its item snapshot in one
// transaction. The product is validated before anything is written.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}
		if !product.InStock {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Product is out of stock"})
			return
		}

		total := product.Price * float64(req.Quantity)
		order := models.DeliveryOrder{
			OrderCode:    newOrderCode(time.Now()),
			UserID:       userID,
			Status:       models.StatusPending,
			TotalAmount:  total,
			Address:      req.Address,
			ContactPhone: req.ContactPhone,
			Notes:        req.Notes,
			Items: []models.DeliveryOrderItem{{
				ProductID:  product.ID,
				Name:       product.Name,
				Quantity:   req.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: total,
			}},
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
			return
		}

		db.Preload("Items").First(&order, order.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order created successfully",
			"order":   order,
		})
	}
}

// GetMyOrders returns all orders for the logged-in user
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		var orders []models.DeliveryOrder
		db.Preload("Items").Preload("Courier").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&orders)
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
	}
}

// GetOrderDetail returns a single order's full detail, owner-checked
func GetOrderDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var order models.DeliveryOrder
		if err := db.Preload("Items").Preload("Courier").First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "This order does not belong to you"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// CancelOrder cancels a pending or assigned order on behalf of its owner.
// The update is conditioned on the observed status so a concurrent
// transition makes the cancel lose cleanly.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var order models.DeliveryOrder
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "This order does not belong to you"})
			return
		}

		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":        false,
				"error":          "Cannot cancel order",
				"reason":         err.Error(),
				"current_status": order.Status,
			})
			return
		}

		res := db.Model(&models.DeliveryOrder{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"status":       models.StatusCancelled,
				"cancelled_at": time.Now(),
			})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to cancel order"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Order changed state, try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully", "order_id": order.ID})
	}
}
