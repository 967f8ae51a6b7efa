package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coin-tracker/auth"
	"coin-tracker/middleware"
	"coin-tracker/models"
	"coin-tracker/store"
)

type AuthHandler struct {
	users    UserStore
	sessions SessionManager
	log      *logrus.Logger
}

func NewAuthHandler(users UserStore, sessions SessionManager, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, log: log}
}

type credentialsInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		h.log.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		h.log.WithError(err).Error("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	// One generic response for unknown user and wrong password alike.
	user, err := h.users.GetByUsername(c.Request.Context(), strings.TrimSpace(input.Username))
	if err != nil || !auth.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to issue session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Logout revokes the presented session. Idempotent: an absent, expired or
// garbage token still gets a 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.BearerToken(c); token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.log.WithError(err).Error("failed to revoke session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// DeleteAccount removes the user and, in the same transaction, everything
// they own.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := currentUserID(c)
	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("failed to delete account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
