package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RomeoThePickleTec/task-management-system-sub001/config"
	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

type SyncController struct{}

// GetUpdates returns tasks and users modified since the client's last sync.
func (sc *SyncController) GetUpdates(c *gin.Context) {
	lastSyncDateStr := c.Query("lastSyncDate")
	var lastSyncDate time.Time
	var err error

	if lastSyncDateStr != "" {
		lastSyncDate, err = time.Parse(time.RFC3339, lastSyncDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format"})
			return
		}
	} else {
		lastSyncDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	var tasks []models.Task
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Subtasks").Where("updated_at > ?", lastSyncDate).
		Find(&tasks).Error; err != nil {
		config.Logger.Errorw("task sync query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching task updates failed"})
		return
	}

	var users []models.User
	if err := config.DB.WithContext(c.Request.Context()).
		Where("updated_at > ?", lastSyncDate).
		Find(&users).Error; err != nil {
		config.Logger.Errorw("user sync query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching user updates failed"})
		return
	}

	c.JSON(http.StatusOK, models.SyncUpdatesResponse{Tasks: tasks, Users: users})
}
