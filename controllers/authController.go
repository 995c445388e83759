package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/utils"
)

const (
	msgInvalidInput          = "Invalid input"
	msgFailedToGenerateToken = "Failed to generate token"
	msgLoggedOut             = "Logged out successfully"
)

func (h *Handler) setAccessToken(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middlewares.AccessTokenCookie, token, maxAge, "/", "", h.SecureCookie, true)
}

func (h *Handler) startSession(ctx *gin.Context, status int, user *models.User) {
	token, err := utils.GenerateJWT(user, h.JWTSecret, time.Now())
	if err != nil {
		log.Ctx(ctx.Request.Context()).Error().Err(err).Msg("jwt generation failed")
		respondWithError(ctx, http.StatusInternalServerError, msgFailedToGenerateToken, err)
		return
	}
	h.setAccessToken(ctx, token, int(utils.TokenTTL.Seconds()))
	ctx.JSON(status, gin.H{"user": user, "token": token})
}

// Signup handles user registration
func (h *Handler) Signup(ctx *gin.Context) {
	var data models.SignupData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	user, err := h.Auth.Signup(ctx.Request.Context(), data)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	log.Ctx(ctx.Request.Context()).Info().Uint("user_id", user.ID).Msg("user signed up")
	h.startSession(ctx, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	user, err := h.Auth.Login(ctx.Request.Context(), data)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	h.startSession(ctx, http.StatusOK, user)
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setAccessToken(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, user)
}
