package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RomeoThePickleTec/task-management-system-sub001/config"
	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
	"github.com/RomeoThePickleTec/task-management-system-sub001/services"
)

// UserController exposes the local user store and the reconciliation flows.
type UserController struct {
	store      services.UserStore
	reconciler *services.Reconciler
}

func NewUserController(store services.UserStore, reconciler *services.Reconciler) *UserController {
	return &UserController{store: store, reconciler: reconciler}
}

func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.store.GetAll(c.Request.Context())
	if err != nil {
		config.Logger.Errorw("listing users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing users failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := uc.store.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		config.Logger.Errorw("fetching user failed", "userID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching user failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies a partial update to the local record and mirrors a
// changed full name to the federated identity, best effort.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var patch models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := models.FederatedIdentity{UID: patch.FirebaseUID}
	user, err := uc.reconciler.UpdateProfile(c.Request.Context(), uint(id), identity, patch)
	if err != nil {
		config.Logger.Errorw("profile update failed", "userID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes the local record and, only when that succeeds, the
// federated identity.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	identity := models.FederatedIdentity{UID: c.Query("firebase_uid")}
	if !uc.reconciler.DeleteUser(c.Request.Context(), uint(id), identity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ReconcileAll runs a bulk reconciliation pass over every federated account.
func (uc *UserController) ReconcileAll(c *gin.Context) {
	report := uc.reconciler.ReconcileAll(c.Request.Context())
	config.Logger.Infow("bulk reconciliation finished",
		"created", report.Created,
		"existing", report.Existing,
		"failed", report.Failed,
	)
	c.JSON(http.StatusOK, report)
}
