package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerPrefix = "Bearer"
	tokenIssuer  = "counterpoint-api"
)

// Claims carried by API tokens. The role is trusted as issued; there is no
// user table to consult.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for userID with the given role
func IssueToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == bearerPrefix {
		return parts[1]
	}
	return ""
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// JWTAuth middleware validates JWT tokens and attaches the caller to context
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID := claims.UserID
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has no subject"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth is like JWTAuth but lets anonymous requests through
func OptionalJWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := parseToken(tokenString, cfg.JWTSecret); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("user_role", claims.Role)
			}
		}
		c.Next()
	}
}

// GetCurrentUserID retrieves the user ID from context
func GetCurrentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok && userID != ""
}

// GetCurrentRole retrieves the user role from context
func GetCurrentRole(c *gin.Context) (string, bool) {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := roleVal.(string)
	return role, ok
}
