package handler

import (
	"errors"
	"net/http"
	"strings"

	"mentor-server/internal/authutils"
	"mentor-server/internal/models"
	"mentor-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contextUserIDKey = "userID"
)

// AuthMiddleware verifies the bearer token and stores the caller's user id
// in the gin context. When tokenRepo is non-nil the token's JTI must still
// be present in Redis (the auth service removes it on logout/revocation).
func AuthMiddleware(verifier *authutils.JWTVerifier, tokenRepo repository.TokenRepository, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			tokenVerificationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authorization header missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			tokenVerificationsTotal.WithLabelValues("malformed").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid Authorization header format"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: tokenErrorMessage(err)})
			return
		}

		if tokenRepo != nil {
			ownerID, err := tokenRepo.GetUserIDByAccessUUID(c.Request.Context(), claims.ID)
			if err != nil {
				if errors.Is(err, models.ErrTokenNotFound) {
					tokenVerificationsTotal.WithLabelValues("revoked").Inc()
					c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token has been revoked"})
					return
				}
				// Redis being down must not lock every caller out; the
				// signature check already passed.
				log.Warn("Token revocation check unavailable, proceeding on signature only", zap.Error(err))
			} else if ownerID != claims.UserID {
				tokenVerificationsTotal.WithLabelValues("mismatch").Inc()
				log.Warn("Access token owner mismatch",
					zap.String("tokenOwner", ownerID.String()),
					zap.String("claimsUser", claims.UserID.String()),
				)
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token is invalid"})
				return
			}
		}

		tokenVerificationsTotal.WithLabelValues("ok").Inc()
		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, models.ErrTokenMalformed):
		return "Token is malformed"
	default:
		return "Token is invalid"
	}
}

// callerID extracts the authenticated user id stored by AuthMiddleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
