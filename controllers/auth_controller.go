package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RomeoThePickleTec/task-management-system-sub001/config"
	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
	"github.com/RomeoThePickleTec/task-management-system-sub001/services"
	"github.com/RomeoThePickleTec/task-management-system-sub001/utils"
)

// AuthController handles federated sign-in and admin provisioning.
type AuthController struct {
	verifier   *utils.TokenVerifier
	reconciler *services.Reconciler
	store      services.UserStore
	provider   services.IdentityProvider
}

func NewAuthController(verifier *utils.TokenVerifier, reconciler *services.Reconciler, store services.UserStore, provider services.IdentityProvider) *AuthController {
	return &AuthController{verifier: verifier, reconciler: reconciler, store: store, provider: provider}
}

// Login verifies a federated ID token, reconciles it against the local user
// store and issues a session JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := ac.verifier.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity verification failed"})
		return
	}

	user, err := ac.reconciler.Reconcile(c.Request.Context(), *identity)
	if err != nil {
		var identityErr *models.IdentityError
		if errors.As(err, &identityErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": identityErr.Error()})
			return
		}
		config.Logger.Errorw("reconcile failed", "uid", identity.UID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// Register provisions both halves of a new account: the local record first,
// then the federated identity with a throwaway password followed by a
// password-reset mail. A duplicate email on the provider side is surfaced
// verbatim.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleDeveloper
	}
	if req.WorkMode == "" {
		req.WorkMode = models.WorkModeRemote
	}

	if exists, err := ac.provider.ExistsByEmail(c.Request.Context(), req.Email); err == nil && exists {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered with identity provider"})
		return
	}

	user, err := ac.store.Create(c.Request.Context(), models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		WorkMode: req.WorkMode,
		Active:   true,
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user creation failed"})
		return
	}

	tempPassword := uuid.New().String()
	identity, err := ac.provider.CreateWithPassword(c.Request.Context(), *user, tempPassword)
	if err != nil {
		config.Logger.Errorw("federated account creation failed",
			"email", req.Email,
			"error", err,
		)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := ac.provider.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		// Best effort: the account exists, the user can request a reset later.
		config.Logger.Errorw("password reset mail failed", "email", req.Email, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"firebase_uid": identity.UID,
	})
}
