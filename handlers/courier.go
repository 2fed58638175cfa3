package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/notify"
	"pharmacy-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// commissionRate is the flat share of an order total a courier earns
// on completion.
const commissionRate = 0.10

type OrderActionRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// GetAvailableOrders shows pending orders with no courier assigned, oldest first
func GetAvailableOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.DeliveryOrder
		db.Preload("Items").
			Where("status = ? AND courier_id IS NULL", models.StatusPending).
			Order("created_at asc").
			Find(&orders)
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
	}
}

// GetMyDeliveries returns all orders assigned to the logged-in courier
func GetMyDeliveries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)
		var orders []models.DeliveryOrder
		db.Preload("Items").Preload("User").
			Where("courier_id = ?", courierID).
			Order("updated_at desc").
			Find(&orders)
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
	}
}

// AcceptOrder assigns a pending order to the caller. The update is
// conditioned on the pending status, so of two racing couriers exactly
// one sees a row change; the loser gets a conflict, not an error.
func AcceptOrder(db *gorm.DB, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var req OrderActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		res := db.Model(&models.DeliveryOrder{}).
			Where("id = ? AND status = ? AND courier_id IS NULL", req.OrderID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":      models.StatusAssigned,
				"courier_id":  courierID,
				"accepted_at": time.Now(),
			})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to accept order"})
			return
		}
		if res.RowsAffected == 0 {
			var order models.DeliveryOrder
			if err := db.First(&order, req.OrderID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Order already taken by another courier"})
			return
		}

		var order models.DeliveryOrder
		db.Preload("Items").First(&order, req.OrderID)

		go notifier.Send(fmt.Sprintf("Order %s accepted by courier #%d", order.OrderCode, courierID))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order accepted",
			"order":   order,
		})
	}
}

// CompleteOrder transitions assigned → delivered and accrues the courier's
// commission in the same transaction as the status flip
func CompleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var req OrderActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var order models.DeliveryOrder
		if err := db.First(&order, req.OrderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		if order.CourierID == nil || *order.CourierID != courierID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not the assigned courier for this order"})
			return
		}
		if err := statemachine.CanTransition(order.Status, models.StatusDelivered, "courier"); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":           false,
				"error":             "Invalid state transition",
				"reason":            err.Error(),
				"current_status":    order.Status,
				"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
			})
			return
		}

		commission := order.TotalAmount * commissionRate
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.DeliveryOrder{}).
				Where("id = ? AND status = ? AND courier_id = ?", order.ID, models.StatusAssigned, courierID).
				Updates(map[string]interface{}{
					"status":       models.StatusDelivered,
					"delivered_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return tx.Model(&models.CourierProfile{}).
				Where("user_id = ?", courierID).
				Updates(map[string]interface{}{
					"completed_orders": gorm.Expr("completed_orders + 1"),
					"completed_today":  gorm.Expr("completed_today + 1"),
					"total_earnings":   gorm.Expr("total_earnings + ?", commission),
					"today_earnings":   gorm.Expr("today_earnings + ?", commission),
				}).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Order changed state, try again"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to complete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Order delivered successfully",
			"order_id":   order.ID,
			"status":     models.StatusDelivered,
			"commission": commission,
		})
	}
}

// CourierCancelOrder lets the assigned courier abandon a delivery,
// transitioning assigned → cancelled
func CourierCancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var req OrderActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var order models.DeliveryOrder
		if err := db.First(&order, req.OrderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		if order.CourierID == nil || *order.CourierID != courierID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not the assigned courier for this order"})
			return
		}
		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "courier"); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":        false,
				"error":          "Invalid state transition",
				"reason":         err.Error(),
				"current_status": order.Status,
			})
			return
		}

		res := db.Model(&models.DeliveryOrder{}).
			Where("id = ? AND status = ? AND courier_id = ?", order.ID, models.StatusAssigned, courierID).
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

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery cancelled", "order_id": order.ID})
	}
}

// GetCourierStats returns earnings counters and daily-goal progress
func GetCourierStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var profile models.CourierProfile
		err := db.Where("user_id = ?", courierID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Courier registered before profiles existed; create lazily
			profile = models.CourierProfile{UserID: courierID}
			if err := db.Create(&profile).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load courier profile"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load courier profile"})
			return
		}

		progress := 0.0
		if profile.DailyGoal > 0 {
			progress = profile.TodayEarnings / profile.DailyGoal
			if progress > 1 {
				progress = 1
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"profile":        profile,
			"goal_progress":  progress,
			"goal_reached":   profile.TodayEarnings >= profile.DailyGoal,
			"commission_pct": commissionRate * 100,
		})
	}
}
