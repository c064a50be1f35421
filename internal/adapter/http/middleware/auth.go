package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"autopro_rental/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "

	// ContextUserIDKey and ContextUsernameKey are the gin context keys set by
	// RequireAuth for downstream handlers.
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"

	tokenTTL = 24 * time.Hour
)

// Claims is the JWT payload: subject carries the operator id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	secretOnce sync.Once
	jwtSecret  []byte
	secretErr  error
)

func loadJWTSecret() error {
	secretOnce.Do(func() {
		sec := os.Getenv("JWT_SECRET")
		if strings.TrimSpace(sec) == "" {
			secretErr = errors.New("JWT secret not configured (set JWT_SECRET)")
			return
		}
		jwtSecret = []byte(sec)
	})
	return secretErr
}

// RequireAuth validates a Bearer token, enforces HS256, and stores the
// operator identity in the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := loadJWTSecret(); err != nil {
			appErr := pkg.NewDomainErrorSimple("AUTH_NOT_CONFIGURED", "Server authentication is not configured", http.StatusInternalServerError)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		h := c.GetHeader(authHeader)
		if h == "" || !strings.HasPrefix(h, bearerPrefix) {
			appErr := pkg.NewDomainErrorSimple("MISSING_TOKEN", "Missing or malformed Authorization header", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		raw := strings.TrimSpace(h[len(bearerPrefix):])

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
			appErr := pkg.NewDomainErrorSimple("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// GenerateJWT signs an HS256 token for the given operator, expiring in 24h.
func GenerateJWT(userID, username string) (string, error) {
	if err := loadJWTSecret(); err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}
