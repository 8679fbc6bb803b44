package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soldout-pos/internal/domain"
	"soldout-pos/internal/service/catalog"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func createProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type variantPreviewRequest struct {
	Attributes []catalog.AttributeInput `json:"attributes"`
	Variants   []domain.Variant         `json:"variants"`
}

// previewVariantsHandler runs variant generation without touching any
// product, so the edit form can show the combination table live.
func previewVariantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req variantPreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		attrs, err := catalog.ParseAttributes(req.Attributes)
		if err != nil {
			writeError(c, err)
			return
		}
		variants, err := catalog.GenerateVariants(attrs, req.Variants)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"variants": variants, "stock": domain.SumVariantStock(variants)})
	}
}
