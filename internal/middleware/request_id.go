package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// ==================== 请求上下文 ====================

type requestIDContextKey struct{}

// ginRequestIDKey gin.Context 中保存请求 ID 的 key
const ginRequestIDKey = "requestID"

// WithRequestID 注入请求 ID 到 context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// GetRequestID 从 context 获取请求 ID
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return id
	}
	return ""
}

// ==================== Gin 中间件 ====================

// RequestID 请求 ID 中间件
// 沿用调用方传入的 X-Request-ID，没有则生成 uuid；同时写入响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ginRequestIDKey, id)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)

		c.Next()
	}
}

// RequestIDFrom 从 gin.Context 读取请求 ID
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ginRequestIDKey)
}
