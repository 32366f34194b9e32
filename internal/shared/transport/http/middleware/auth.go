package middleware

import (
	"net/http"
	"strings"

	"MachiKoro/internal/shared/security"
	"MachiKoro/internal/shared/transport"
	"MachiKoro/modules/kit/errx"

	"github.com/gin-gonic/gin"
)

const claimsKey = "seat_claims"

// SeatAuth 校验 Authorization: Bearer <token>，通过后把座位信息放入 gin.Context。
func SeatAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "missing_token")
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Seat 取出已认证的座位，未经过 SeatAuth 时返回 false。
func Seat(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, reason string) {
	err := errx.ErrUnauthorized.WithData("reason", reason)
	transport.SetErrorReason(c.Request.Context(), reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, transport.Failure(transport.Unauthorized, err))
}
