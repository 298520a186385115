package middleware
import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"quizdeck/sessions"
	"quizdeck/utils"
)
// SessionCookie carries the signed session token in the browser
const SessionCookie = "quizdeck_session"
// Context keys set by the middleware
const (
	SessionIDKey = "session_id"
	SubjectKey   = "user_subject"
	RolesKey     = "user_roles"
)
// SessionMiddleware resolves the quiz session of the request from the session
// cookie or a Bearer token and stores its id under SessionIDKey.
func SessionMiddleware(issuer *sessions.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			tokenString, _ = bearerToken(c)
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required, reload the page"})
			return
		}
		claims, err := issuer.Parse(tokenString)
		if err != nil {
			abortWithTokenError(c, err)
			return
		}
		if claims.SessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		c.Set(SessionIDKey, claims.SessionID)
		c.Next()
	}
}
// AuthMiddleware validates an admin Bearer token and sets user context.
func AuthMiddleware(issuer *sessions.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}
		claims, err := issuer.Parse(tokenString)
		if err != nil {
			abortWithTokenError(c, err)
			return
		}
		c.Set(SubjectKey, claims.Subject)
		c.Set(RolesKey, claims.Roles) // Pass roles to context for RBAC
		c.Next()
	}
}
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization header required"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && strings.ToLower(parts[0]) == "bearer") {
		return "", "Authorization header format must be Bearer {token}"
	}
	return parts[1], ""
}
func abortWithTokenError(c *gin.Context, err error) {
	log.Printf("JWT parsing error: %v", err)
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token signature"})
	case errors.Is(err, jwt.ErrTokenExpired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not active yet"})
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token issuer"})
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	}
}
// RoleCheckMiddleware checks if the user has one of the required roles.
func RoleCheckMiddleware(requiredRoles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get(RolesKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User roles not found in context"})
			return
		}
		roles, ok := userRoles.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid user roles format"})
			return
		}
		for _, requiredRole := range requiredRoles {
			if utils.ContainsString(roles, requiredRole) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
// Logger middleware for request logging
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		log.Printf("[QUIZDECK] %s %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Request.Proto, c.Writer.Status(), latency)
	}
}
