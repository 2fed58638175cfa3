package handlers

import (
	"net/http"

	"pharmacy-api/middleware"
	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetInbox returns the caller's inbox: broadcasts plus direct messages,
// newest first, with an unread counter for the direct ones
func GetInbox(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var messages []models.CourierMessage
		db.Where("courier_id IS NULL OR courier_id = ?", courierID).
			Order("created_at desc").
			Find(&messages)

		var unread int64
		db.Model(&models.CourierMessage{}).
			Where("courier_id = ? AND is_read = ?", courierID, false).
			Count(&unread)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"count":    len(messages),
			"unread":   unread,
			"messages": messages,
		})
	}
}

// MarkMessageRead flags one direct message as read, scoped to the caller
func MarkMessageRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		res := db.Model(&models.CourierMessage{}).
			Where("id = ? AND courier_id = ?", c.Param("id"), courierID).
			Update("is_read", true)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to mark message read"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Marked as read"})
	}
}

// GetChat returns the caller's 1:1 transcript with dispatch, oldest first,
// and marks inbound messages as read
func GetChat(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var messages []models.ChatMessage
		db.Where("courier_id = ?", courierID).
			Order("created_at asc").
			Find(&messages)

		db.Model(&models.ChatMessage{}).
			Where("courier_id = ? AND from_courier = ? AND is_read = ?", courierID, false, false).
			Update("is_read", true)

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(messages), "messages": messages})
	}
}

// PostChatMessage appends an outbound message to the caller's transcript
func PostChatMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courierID := middleware.GetUserID(c)

		var req struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		msg := models.ChatMessage{
			CourierID:   courierID,
			FromCourier: true,
			Text:        req.Text,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "chat_message": msg})
	}
}
