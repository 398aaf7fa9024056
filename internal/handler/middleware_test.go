package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentor-server/internal/authutils"
	"mentor-server/internal/models"
	repomocks "mentor-server/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func signTestToken(t *testing.T, userID uuid.UUID, jti string, ttl time.Duration) string {
	t.Helper()
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        jti,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newAuthTestRouter(t *testing.T, tokenRepo *repomocks.TokenRepository) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	verifier, err := authutils.NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	var seenUserID uuid.UUID
	router := gin.New()
	// A typed nil would make the interface non-nil inside the middleware.
	mw := AuthMiddleware(verifier, nil, zap.NewNop())
	if tokenRepo != nil {
		mw = AuthMiddleware(verifier, tokenRepo, zap.NewNop())
	}
	router.GET("/protected", mw, func(c *gin.Context) {
		id, _ := callerID(c)
		seenUserID = id
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func getWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	t.Run("Valid token passes and exposes the user id", func(t *testing.T) {
		router, seen := newAuthTestRouter(t, nil)
		token := signTestToken(t, userID, uuid.NewString(), time.Hour)

		w := getWithToken(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *seen)
	})

	t.Run("Missing header is rejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, nil)
		w := getWithToken(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, nil)
		token := signTestToken(t, userID, uuid.NewString(), -time.Hour)

		w := getWithToken(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, nil)
		w := getWithToken(router, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Revoked token is rejected when the token store says so", func(t *testing.T) {
		jti := uuid.NewString()
		tokenRepo := new(repomocks.TokenRepository)
		tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, jti).Return(uuid.Nil, models.ErrTokenNotFound)

		router, _ := newAuthTestRouter(t, tokenRepo)
		token := signTestToken(t, userID, jti, time.Hour)

		w := getWithToken(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})

	t.Run("Token owner mismatch is rejected", func(t *testing.T) {
		jti := uuid.NewString()
		tokenRepo := new(repomocks.TokenRepository)
		tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, jti).Return(uuid.New(), nil)

		router, _ := newAuthTestRouter(t, tokenRepo)
		token := signTestToken(t, userID, jti, time.Hour)

		w := getWithToken(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token store outage falls back to signature-only", func(t *testing.T) {
		jti := uuid.NewString()
		tokenRepo := new(repomocks.TokenRepository)
		tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, jti).
			Return(uuid.Nil, errors.New("redis: connection refused"))

		router, seen := newAuthTestRouter(t, tokenRepo)
		token := signTestToken(t, userID, jti, time.Hour)

		w := getWithToken(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *seen)
	})
}
