package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront_back_end/internal/auth"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/repository"
)

type AuthHandler struct {
	users     repository.UserRepository
	jwtSecret []byte
}

func NewAuthHandler(users repository.UserRepository, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), input.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		handlers.RespondError(c, err)
		return
	}
	valid := false
	if err == nil {
		if valid, err = auth.VerifyPassword(input.Password, user.Password); err != nil {
			logger.L().Warn("⚠️ Hash de mot de passe illisible", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	logger.L().Info("🔑 Connexion", zap.String("user_id", user.ID))
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
