package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName holds the access token between requests.
const CookieName = "fintrack_token"

// Middleware validates the GoTrue access token (HS256, signed with the
// project JWT secret) from the session cookie or an Authorization header and
// puts the caller's identity into the request context.
func Middleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				abortUnauthorized(c, "invalid authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie(CookieName, "", -1, "/", "", false, true)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			abortUnauthorized(c, "invalid subject in token")
			return
		}

		c.Set("user_id", sub)
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		c.Next()
	}
}

// DemoMiddleware substitutes the fixed demo identity when no identity
// service is configured.
func DemoMiddleware(demoUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", demoUserID)
		c.Next()
	}
}

// UserID pulls the authenticated user id out of the request context.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
