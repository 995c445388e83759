package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
	"github.com/Kariqs/storefront-api/utils"
)

const (
	AccessTokenCookie = "access_token"
	userKey           = "user"
)

type UserLoader interface {
	User(ctx context.Context, id uint) (*models.User, error)
}

// RequireAuth accepts the token from the access_token cookie or an
// Authorization bearer header and puts the loaded user on the context.
func RequireAuth(secret string, users UserLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - No access token provided", "error": ""})
			return
		}

		claims, err := utils.ParseJWT(token, secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid access token", "error": err.Error()})
			return
		}

		user, err := users.User(ctx.Request.Context(), claims.UserID)
		if services.IsUnauthorized(err) {
			log.Ctx(ctx.Request.Context()).Debug().Err(err).Uint("user_id", claims.UserID).Msg("token user not found")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - User not found", "error": err.Error()})
			return
		}
		if err != nil {
			log.Ctx(ctx.Request.Context()).Error().Err(err).Uint("user_id", claims.UserID).Msg("token user lookup failed")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}

		ctx.Set(userKey, user)
		l := log.Ctx(ctx.Request.Context()).With().Uint("user_id", user.ID).Logger()
		ctx.Request = ctx.Request.WithContext(l.WithContext(ctx.Request.Context()))
		ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context", "error": ""})
			return
		}
		if !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied - Admin only", "error": ""})
			return
		}
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	v, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func bearerToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
