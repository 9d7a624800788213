package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// productHandler manages the redeemable product catalog. Reads are open to
// any authenticated account; writes are admin only.
type productHandler struct {
	productSvc portssvc.ProductSvcFacade
}

func RegisterProductRoutes(rg *gin.RouterGroup, productSvc portssvc.ProductSvcFacade) {
	h := &productHandler{productSvc: productSvc}

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.POST("", middleware.RequireRole("admin"), h.createProduct)
		products.PUT("/:id", middleware.RequireRole("admin"), h.updateProduct)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.deactivateProduct)
	}
}

func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listProducts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	products, err := h.productSvc.ListProducts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": dto.ToListProductResponse(products)})
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	product, err := h.productSvc.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, _ := middlewareAccountID(c)
	product, err := h.productSvc.CreateProduct(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterID, _ := middlewareAccountID(c)
	product, err := h.productSvc.UpdateProduct(c.Request.Context(), c.Param("id"), req, updaterID)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updaterID, _ := middlewareAccountID(c)
	if err := h.productSvc.DeactivateProduct(c.Request.Context(), c.Param("id"), updaterID); err != nil {
		respondError(c, logger, err, "Failed to deactivate product")
		return
	}
	c.Status(http.StatusNoContent)
}
