package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soldout-pos/internal/domain"
)

type addLineRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	VariantName string `json:"variantName"`
}

type setQuantityRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	VariantName string `json:"variantName"`
	Quantity    int    `json:"quantity"`
}

type toggleGiftRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	VariantName string `json:"variantName"`
	IsGift      *bool  `json:"isGift" binding:"required"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"lines": svc.Lines()})
	}
}

func addCartLineHandler(carts cartService, products catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		product, err := products.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			writeError(c, err)
			return
		}
		var variant *domain.Variant
		if req.VariantName != "" {
			if variant = product.FindVariant(req.VariantName); variant == nil {
				writeError(c, &domain.ValidationError{Field: "variantName", Reason: "unknown variant"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"lines": carts.AddLine(*product, variant)})
	}
}

func setCartQuantityHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		key := domain.LineKey{ProductID: req.ProductID, VariantName: req.VariantName}
		c.JSON(http.StatusOK, gin.H{"lines": svc.SetQuantity(key, req.Quantity)})
	}
}

func toggleGiftHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleGiftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		key := domain.LineKey{ProductID: req.ProductID, VariantName: req.VariantName}
		c.JSON(http.StatusOK, gin.H{"lines": svc.ToggleGift(key, *req.IsGift)})
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Clear()
		c.Status(http.StatusNoContent)
	}
}
