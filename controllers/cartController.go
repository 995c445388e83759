package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/storefront-api/services"
)

type cartItemBody struct {
	ProductID uint `json:"productId"`
}

type quantityBody struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	lines, err := h.Cart.Items(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lines)
}

func (h *Handler) AddToCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, services.ErrInvalidProductID.Error(), err)
		return
	}

	items, err := h.Cart.Add(ctx.Request.Context(), user, body.ProductID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// RemoveAllFromCart removes one product, or every product when the body
// names none.
func (h *Handler) RemoveAllFromCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(ctx, http.StatusBadRequest, services.ErrInvalidProductID.Error(), err)
		return
	}

	items, err := h.Cart.RemoveAll(ctx.Request.Context(), user, body.ProductID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateQuantity(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var body quantityBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, services.ErrInvalidQuantity.Error(), err)
		return
	}

	items, err := h.Cart.UpdateQuantity(ctx.Request.Context(), user, productID, *body.Quantity)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}
