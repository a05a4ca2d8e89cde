package handlers

import (
	"net/http"

	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/metrics"
	"github.com/JonnyWalker81/wellness/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Env            string
	Production     bool
	AllowedOrigins []string

	Logger      logger.Logger
	Metrics     *metrics.Metrics
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter // nil disables rate limiting

	Insights  *InsightsHandler
	CheckIns  *CheckInHandler
	PhaseTags *PhaseTagHandler
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "route "+c.Request.URL.Path))
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimiter != nil {
		v1.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	v1.Use(middleware.Auth(cfg.Verifier))
	{
		v1.GET("/insights/checkins", cfg.Insights.GetCheckInInsights)

		v1.POST("/checkins", cfg.CheckIns.CreateCheckIn)
		v1.GET("/checkins", cfg.CheckIns.GetCheckIns)

		v1.PUT("/phase-tags/:date", cfg.PhaseTags.SetPhaseTag)
		v1.GET("/phase-tags", cfg.PhaseTags.GetPhaseTags)
	}

	return router
}
