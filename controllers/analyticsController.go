package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAnalytics(ctx *gin.Context) {
	summary, err := h.Analytics.Summary(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	daily, err := h.Analytics.DailySales(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"analyticsData":  summary,
		"dailySalesData": daily,
	})
}
