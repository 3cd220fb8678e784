package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/api"
	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var shutdownTimeout time.Duration

// serveCmd starts the REST API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 初始化数据库
		if err := database.Init(database.Config{Path: cfg.DBPath}, logger); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder, err := metrics.NewPrometheus(reg, "")
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		// 初始化路由
		router, stop := api.SetupRouter(api.Deps{
			Config:   cfg,
			DB:       database.GetDB(),
			Logger:   logger,
			Metrics:  recorder,
			Gatherer: reg,
		})
		defer stop()

		srv := &http.Server{
			Addr:              cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting",
				zap.String("addr", cfg.Port),
				zap.String("db", cfg.DBPath),
				zap.Bool("auth", cfg.AuthEnabled))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
}
