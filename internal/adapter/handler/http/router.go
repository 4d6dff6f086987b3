package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/config"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/metrics"
	"github.com/MikeRez0/receiptprocessor/internal/core/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Router struct {
	*gin.Engine
	addr   string
	logger *zap.Logger
}

func NewRouter(
	conf *config.HTTP,
	receiptHandler *ReceiptHandler,
	m *metrics.Metrics,
	logger *zap.Logger) (*Router, error) {

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("unexpected gin validator engine")
	}
	if err := validation.RegisterReceiptRules(v); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(recovery(logger), requestLogger(logger, m))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	receipts := router.Group("/receipts")
	{
		receipts.POST("/process", receiptHandler.ProcessReceipt)
		receipts.GET("/:id", receiptHandler.GetReceipt)
		receipts.GET("/:id/points", receiptHandler.GetPoints)
	}

	return &Router{Engine: router, addr: conf.HostString, logger: logger}, nil
}

// Serve starts the HTTP server and stops it gracefully once ctx is done.
func (r *Router) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              r.addr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", zap.String("address", r.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
