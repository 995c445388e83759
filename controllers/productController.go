package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/storefront-api/models"
)

const msgProductDeleted = "Product deleted successfully"

func (h *Handler) GetAllProducts(ctx *gin.Context) {
	products, err := h.Products.All(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetFeaturedProducts(ctx *gin.Context) {
	products, err := h.Featured.Featured(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (h *Handler) GetProductsByCategory(ctx *gin.Context) {
	products, err := h.Products.ByCategory(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetRecommendedProducts(ctx *gin.Context) {
	products, err := h.Products.Recommendations(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(ctx *gin.Context) {
	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.Products.Create(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.Products.Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *Handler) ToggleFeaturedProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	product, err := h.Products.ToggleFeatured(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.Products.Delete(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": msgProductDeleted})
}
