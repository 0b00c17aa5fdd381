package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/pricing"
	"storefront_back_end/internal/repository"
)

type CartHandler struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartHandler(carts repository.CartRepository, products repository.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

type cartResponse struct {
	Items  []models.CartItem  `json:"items"`
	Totals pricing.CartTotals `json:"totals"`
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	items, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: items, Totals: pricing.Calculate(items).Rounded()})
}

// POST /api/cart : le prix et la remise viennent du catalogue, pas du client
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < models.MinQuantity || input.Quantity > models.MaxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité hors limites (1 à 10)"})
		return
	}
	size := models.NormalizeSize(input.Size)
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Taille inconnue"})
		return
	}

	ctx := c.Request.Context()
	product, err := h.products.Get(ctx, input.ProductID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !product.HasSize(size) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Taille indisponible pour ce produit"})
		return
	}

	item, err := h.carts.Add(ctx, userID, models.CartItem{
		ProductID:       product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
		UnitPrice:       product.Price,
		DiscountPerUnit: product.DiscountPerUnit,
		Quantity:        input.Quantity,
		Size:            size,
		ImageRef:        product.FirstImage(),
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	logger.L().Info("🛒 Article ajouté au panier",
		zap.String("user_id", userID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", item.Quantity))
	c.JSON(http.StatusCreated, item)
}

// PATCH /api/cart/:itemId {change: ±1}
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	var input struct {
		Change int `json:"change"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || (input.Change != 1 && input.Change != -1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "change doit valoir 1 ou -1"})
		return
	}

	item, err := h.carts.ChangeQuantity(c.Request.Context(), userID, c.Param("itemId"), input.Change)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /api/cart/:itemId
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := handlers.UserID(c)
	if !ok {
		return
	}
	err := h.carts.Remove(c.Request.Context(), userID, c.Param("itemId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article supprimé"})
}
