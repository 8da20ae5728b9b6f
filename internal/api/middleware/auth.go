package middleware

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserIDKey = "user_id"
	CtxTokenKey  = "token"
)

// Auth 校验 Bearer Token，并拒绝已注销的签名
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Fail(c, http.StatusUnauthorized, "未提供有效的认证信息")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "认证信息无效或已过期")
			c.Abort()
			return
		}

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "认证信息无效或已过期")
			c.Abort()
			return
		}

		denied, err := redis.GetValue(c.Request.Context(), consts.TokenDenyKey+signature)
		if err == nil && denied != "" {
			response.Fail(c, http.StatusUnauthorized, "认证信息已注销")
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxTokenKey, tokenString)
		c.Next()
	}
}

// CurrentUserID 读取鉴权中间件写入的用户 id
func CurrentUserID(c *gin.Context) uint64 {
	id, _ := c.Get(CtxUserIDKey)
	userID, _ := id.(uint64)
	return userID
}
