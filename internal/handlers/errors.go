// Package handlers regroupe ce qui est partagé par les handlers HTTP.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/orderstate"
	"storefront_back_end/internal/repository"
	"storefront_back_end/internal/service"
)

// RespondError traduit une erreur métier en réponse {"error": ...}
func RespondError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		perr *service.PaymentError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informations de livraison incomplètes", "fields": verr.Fields})
	case errors.As(err, &perr):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Paiement non vérifié : " + perr.Err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé à cette commande"})
	case errors.Is(err, cache.ErrLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "Opération déjà en cours"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "La commande a été modifiée entre-temps, rechargez-la"})
	case errors.Is(err, orderstate.ErrReasonRequired),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orderstate.ErrInvalidTransition),
		errors.Is(err, orderstate.ErrNotDelivered),
		errors.Is(err, orderstate.ErrReturnExists),
		errors.Is(err, orderstate.ErrNoReturn),
		errors.Is(err, service.ErrCartChanged),
		errors.Is(err, service.ErrAmountChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.L().Error("❌ Erreur serveur",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
	}
}

// UserID lit l'utilisateur posé par middleware.AuthRequired
func UserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return "", false
	}
	return userID, true
}
