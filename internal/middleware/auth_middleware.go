package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// RoleServiceRole - роль сервисного токена
const RoleServiceRole = "service_role"

// ServiceClaims - claims сервисного токена
type ServiceClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ServiceAuthMiddleware пропускает только запросы с сервисным токеном (HS256, role=service_role)
type ServiceAuthMiddleware struct {
	secret []byte
	logger *zap.Logger
}

// NewServiceAuthMiddleware создает middleware сервисной аутентификации
func NewServiceAuthMiddleware(secret string, logger *zap.Logger) *ServiceAuthMiddleware {
	return &ServiceAuthMiddleware{secret: []byte(secret), logger: logger.Named("service_auth")}
}

// ParseToken проверяет подпись, срок действия и роль токена
func (m *ServiceAuthMiddleware) ParseToken(tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, errors.New("token is expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != RoleServiceRole {
		return nil, errors.New("service role required")
	}
	return claims, nil
}

// RequireServiceRole проверяет заголовок Authorization: Bearer {token}
func (m *ServiceAuthMiddleware) RequireServiceRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			return
		}

		claims, err := m.ParseToken(parts[1])
		if err != nil {
			m.logger.Info("service token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			return
		}

		c.Set("service_subject", claims.Subject)
		c.Next()
	}
}
