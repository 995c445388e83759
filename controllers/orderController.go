package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))

	result, err := h.Orders.List(ctx.Request.Context(), page, limit, ctx.DefaultQuery("sort", "desc"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	previousPage := result.Page - 1
	nextPage := result.Page + 1
	ctx.JSON(http.StatusOK, gin.H{
		"orders": result.Orders,
		"metadata": gin.H{
			"total":        result.Total,
			"currentPage":  result.Page,
			"limit":        result.Limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  result.TotalPages > result.Page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func (h *Handler) GetMyOrders(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	orders, err := h.Orders.ForUser(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetOrderByID(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	orderID, ok := parseID(ctx, "orderId")
	if !ok {
		return
	}

	order, err := h.Orders.Get(ctx.Request.Context(), user, orderID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}
