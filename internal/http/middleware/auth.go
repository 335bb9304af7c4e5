package middleware

import (
	"errors"
	"net/http"
	"strings"

	"mobiletoilet/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const requestContextKey = "request_context"

// AuthOptional parses a bearer token when present. Requests without a token
// continue as anonymous citizens; an invalid token is rejected.
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || len(secret) == 0 {
			c.Set(requestContextKey, domain.RequestContext{Role: domain.RoleCitizen})
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: bearer token expected"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			msg := "unauthorized: invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "unauthorized: token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		rc := domain.RequestContext{Role: domain.RoleCitizen}
		if v, ok := claims["uuid"].(string); ok {
			rc.UserUUID = v
		}
		if v, ok := claims["role"].(string); ok && strings.EqualFold(v, domain.RoleEmployee) {
			rc.Role = domain.RoleEmployee
		}
		c.Set(requestContextKey, rc)
		c.Set("userRole", rc.Role)
		c.Next()
	}
}

// GetRequestContext returns the caller identity set by AuthOptional.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{Role: domain.RoleCitizen}
}
