package handlers

import (
	"net/http"

	"pharmacy-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health pings the database and reports 503 when it is unreachable
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"status":  "unhealthy",
				"error":   "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "healthy",
			"service": "Online Pharmacy Delivery API",
		})
	}
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"state_machine":   info,
		"terminal_states": []string{"delivered", "cancelled"},
		"description":     "Pharmacy Delivery Order Lifecycle State Machine",
	})
}
