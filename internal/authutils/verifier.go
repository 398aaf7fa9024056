package authutils

import (
	"context"
	"errors"
	"fmt"

	"mentor-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWTVerifier verifies JWT tokens issued by the auth service.
type JWTVerifier struct {
	jwtSecret string
	logger    *zap.Logger
}

// NewJWTVerifier creates a new JWTVerifier.
// The logger is optional; a Noop logger is used when nil.
func NewJWTVerifier(jwtSecret string, logger *zap.Logger) (*JWTVerifier, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JWTVerifier{
		jwtSecret: jwtSecret,
		logger:    logger.Named("JWTVerifier"),
	}, nil
}

// VerifyToken checks the JWT signature and validity and extracts the claims.
func (v *JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	log := v.logger.With(zap.String("tokenSnippet", tokenSnippet(tokenString)))
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.Warn("Unexpected signing method", zap.Any("alg", token.Header["alg"]))
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.jwtSecret), nil
	})

	if err != nil {
		log.Warn("Failed to parse or verify token", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		} else if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, models.ErrTokenMalformed
		} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}

	if !token.Valid {
		log.Warn("Token is invalid despite no parsing error")
		return nil, models.ErrTokenInvalid
	}

	if claims.UserID == uuid.Nil {
		log.Warn("Token missing UserID", zap.Any("claims", claims))
		return nil, fmt.Errorf("%w: UserID missing", models.ErrTokenInvalid)
	}

	log.Debug("Token verified successfully", zap.String("userID", claims.UserID.String()), zap.Strings("roles", claims.Roles))
	return claims, nil
}

// tokenSnippet returns a log-safe prefix of the token.
func tokenSnippet(tokenString string) string {
	limit := 15
	if len(tokenString) > limit {
		return tokenString[:limit] + "..."
	}
	return tokenString
}
