package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/config"
	"github.com/jengzang/slotting-backend-go/internal/handler"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
	"github.com/jengzang/slotting-backend-go/internal/middleware"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"github.com/jengzang/slotting-backend-go/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps 路由依赖
type Deps struct {
	Config   *config.Config
	DB       *sql.DB
	Logger   *zap.Logger
	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer // nil 时不暴露 /metrics
}

// SetupRouter 设置路由。返回的 stop 函数释放限流器等后台资源。
func SetupRouter(deps Deps) (r *gin.Engine, stop func()) {
	cfg := deps.Config
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNop()
	}

	layoutRepo := repository.NewLayoutRepository(deps.DB)
	elementRepo := repository.NewElementRepository(deps.DB)
	markerRepo := repository.NewRouteMarkerRepository(deps.DB)
	pickRepo := repository.NewPickRepository(deps.DB)
	laborRepo := repository.NewLaborRepository(deps.DB)

	layoutHandler := handler.NewLayoutHandler(
		service.NewLayoutService(layoutRepo, elementRepo, markerRepo, deps.Logger))
	uploadHandler := handler.NewUploadHandler(
		service.NewUploadService(layoutRepo, elementRepo, pickRepo, deps.Metrics, deps.Logger), cfg.MaxUploadBytes)
	analyticsHandler := handler.NewAnalyticsHandler(
		service.NewAnalyticsService(layoutRepo, elementRepo, markerRepo, pickRepo, laborRepo, cfg.Analytics, deps.Metrics, deps.Logger))
	laborHandler := handler.NewLaborHandler(
		service.NewLaborService(layoutRepo, laborRepo, cfg.Analytics, deps.Logger))

	r = gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader+", Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	stop = func() {}
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		r.Use(middleware.RateLimit(limiter))
		stop = limiter.Stop
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if err := deps.DB.PingContext(c.Request.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"message": "Slotting Backend API is running",
		})
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API 路由组
	api := r.Group("/api/v1")

	if cfg.AuthEnabled {
		authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.APIKey, cfg.TokenTTL)
		api.POST("/auth/token", authHandler.IssueToken)
	}

	protected := api.Group("")
	if cfg.AuthEnabled {
		protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		// 布局
		layouts := protected.Group("/layouts")
		{
			layouts.GET("", layoutHandler.GetLayouts)
			layouts.POST("", layoutHandler.CreateLayout)
			layouts.GET("/:id", layoutHandler.GetLayout)
			layouts.PUT("/:id", layoutHandler.UpdateLayout)
			layouts.DELETE("/:id", layoutHandler.DeleteLayout)

			layouts.GET("/:id/elements", layoutHandler.GetElements)
			layouts.POST("/:id/elements", layoutHandler.CreateElement)
			layouts.PUT("/:id/elements", layoutHandler.SaveCanvas)

			layouts.GET("/:id/route-markers", layoutHandler.GetRouteMarkers)
			layouts.POST("/:id/route-markers", layoutHandler.CreateRouteMarker)
			layouts.PUT("/:id/route-markers", layoutHandler.ReplaceRouteMarkers)

			// 拣货数据
			layouts.POST("/:id/picks/upload", uploadHandler.UploadPicks)
			layouts.POST("/:id/item-picks/upload", uploadHandler.UploadItemPicks)
			layouts.GET("/:id/picks/sample", uploadHandler.GetSample)
			layouts.GET("/:id/uploads", uploadHandler.GetUploads)

			// 分析
			layouts.GET("/:id/heatmap", analyticsHandler.GetHeatmap)
			layouts.GET("/:id/dashboard", analyticsHandler.GetDashboard)
			layouts.GET("/:id/velocity", analyticsHandler.GetVelocity)
			layouts.GET("/:id/item-velocity", analyticsHandler.GetItemVelocity)
			layouts.GET("/:id/reslotting", analyticsHandler.GetReslotting)
			layouts.GET("/:id/element-reslotting", analyticsHandler.GetElementReslotting)
			layouts.GET("/:id/roi", analyticsHandler.GetROI)
			layouts.GET("/:id/labor", analyticsHandler.GetLabor)

			layouts.GET("/:id/labor-standards", laborHandler.GetStandards)
			layouts.PUT("/:id/labor-standards", laborHandler.UpdateStandards)
		}

		protected.PUT("/elements/:id", layoutHandler.UpdateElement)
		protected.DELETE("/elements/:id", layoutHandler.DeleteElement)
		protected.DELETE("/route-markers/:id", layoutHandler.DeleteRouteMarker)
		protected.DELETE("/uploads/:uploadId", uploadHandler.DeleteUpload)
	}

	return r, stop
}
