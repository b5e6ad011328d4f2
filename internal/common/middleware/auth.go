package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/prepforge/examprep-backend/internal/common/errors"
)

const userIDKey = "user_id"

// AuthRequired validates the bearer token and stores the user id in context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			abortUnauthorized(c, "invalid token subject")
			return
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			abortUnauthorized(c, "invalid token subject")
			return
		}

		c.Set(userIDKey, uint(userID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	appErr := errors.Unauthorized(msg)
	c.JSON(appErr.Status, appErr)
	c.Abort()
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SignToken issues an HMAC-signed token for the given user. Used by tests
// and local tooling; token issuance for real users lives in the auth gateway.
func SignToken(secret string, userID uint, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
