package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RomeoThePickleTec/task-management-system-sub001/config"
	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
	"github.com/RomeoThePickleTec/task-management-system-sub001/services"
)

// TaskController persists task trees and runs the hierarchy aggregator over
// them for derived reads, cascading writes and the wire serialization.
type TaskController struct {
	notifier  services.Notifier
	assistant *services.Assistant
	store     services.UserStore
}

func NewTaskController(notifier services.Notifier, assistant *services.Assistant, store services.UserStore) *TaskController {
	return &TaskController{notifier: notifier, assistant: assistant, store: store}
}

func (tc *TaskController) loadTask(c *gin.Context) (*models.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return nil, false
	}

	var task models.Task
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Subtasks").First(&task, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return nil, false
	}
	return &task, true
}

func (tc *TaskController) ListTasks(c *gin.Context) {
	var tasks []models.Task
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Subtasks").Order("id").Find(&tasks).Error; err != nil {
		config.Logger.Errorw("listing tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing tasks failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		Priority:       req.Priority,
		Status:         models.StatusTodo,
		EstimatedHours: req.EstimatedHours,
		AssigneeID:     req.AssigneeID,
		SprintID:       req.SprintID,
	}
	if err := config.DB.WithContext(c.Request.Context()).Create(&task).Error; err != nil {
		config.Logger.Errorw("task creation failed", "title", req.Title, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task creation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTask returns the persisted serialization of the task tree plus the
// derived status and effort. The serialized shape keeps the root full and the
// children reduced; derived values ride alongside rather than replacing the
// stored fields.
func (tc *TaskController) GetTask(c *gin.Context) {
	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	comp := services.NewCompositeFromTask(*task)
	c.JSON(http.StatusOK, gin.H{
		"task":                  comp.Serialize(),
		"derived_status":        comp.GetStatus(),
		"total_estimated_hours": comp.GetEstimatedHours(),
	})
}

// SetStatus cascades a status override through the whole tree, persists the
// result and notifies the assignee when the derived status moved.
func (tc *TaskController) SetStatus(c *gin.Context) {
	var req models.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	comp := services.NewCompositeFromTask(*task)

	var observer *services.StatusObserver
	if tc.notifier != nil {
		if recipient := tc.assigneeEmail(c, task); recipient != "" {
			observer = services.NewStatusObserver(comp, tc.notifier, recipient)
		}
	}

	comp.SetStatus(req.Status)
	serialized := comp.Serialize()

	err := config.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
			Updates(map[string]any{"status": req.Status, "updated_at": time.Now().UTC()}).Error; err != nil {
			return err
		}
		for _, sub := range serialized.Subtasks {
			if err := tx.Model(&models.Subtask{}).Where("id = ?", sub.ID).
				Updates(map[string]any{"status": sub.Status, "updated_at": sub.UpdatedAt}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.Logger.Errorw("status cascade persist failed", "taskID", task.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		return
	}

	if observer != nil {
		if err := observer.Check(); err != nil {
			config.Logger.Errorw("status notification failed", "taskID", task.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"task": serialized, "derived_status": comp.GetStatus()})
}

func (tc *TaskController) assigneeEmail(c *gin.Context, task *models.Task) string {
	if task.AssigneeID == nil {
		return ""
	}
	user, err := tc.store.GetByID(c.Request.Context(), *task.AssigneeID)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func (tc *TaskController) AddSubtask(c *gin.Context) {
	var req models.AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	sub := models.Subtask{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusTodo,
		TaskID:      task.ID,
	}
	if err := config.DB.WithContext(c.Request.Context()).Create(&sub).Error; err != nil {
		config.Logger.Errorw("subtask creation failed", "taskID", task.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subtask creation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subtask": sub})
}

func (tc *TaskController) RemoveSubtask(c *gin.Context) {
	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	subID, err := strconv.ParseUint(c.Param("subId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subtask id"})
		return
	}

	// Removal of an unknown subtask is a no-op, mirroring the in-memory
	// composite's behaviour.
	config.DB.WithContext(c.Request.Context()).
		Where("id = ? AND task_id = ?", uint(subID), task.ID).
		Delete(&models.Subtask{})
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// SuggestSubtasks asks the assistant for a breakdown of the task. Nothing is
// persisted; the client decides what to attach.
func (tc *TaskController) SuggestSubtasks(c *gin.Context) {
	if tc.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not configured"})
		return
	}

	var req models.SuggestSubtasksRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	suggestions, err := tc.assistant.SuggestSubtasks(c.Request.Context(), *task, req.MaxSuggestions)
	if err != nil {
		config.Logger.Errorw("subtask suggestion failed", "taskID", task.ID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion failed"})
		return
	}

	c.JSON(http.StatusOK, models.SuggestSubtasksResponse{
		Suggestions: suggestions,
		GeneratedAt: time.Now().UTC(),
	})
}
