package http

import (
	"net/http"
	"time"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLogger logs and measures every request once the handler returned.
func requestLogger(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		elapsed := time.Since(start)
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := ctx.Writer.Status()

		m.ObserveRequest(ctx.Request.Method, path, status, elapsed)
		logger.Info("request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
	}
}

// recovery turns a handler panic into a bare 500.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, err any) {
		logger.Error("panic while serving request",
			zap.String("path", ctx.Request.URL.Path), zap.Any("panic", err))
		ctx.String(http.StatusInternalServerError, msgInternal)
	})
}
