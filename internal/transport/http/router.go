package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/health"
	"corporate-site/backend/internal/middleware"
	"corporate-site/backend/internal/monitoring"
	"corporate-site/backend/internal/service"
)

// お問い合わせペイロードは小さいので 1MB で十分。
const contactBodyLimit = 1 * 1024 * 1024

// RouterDependencies はルータの依存項目。
type RouterDependencies struct {
	Config         *config.Config
	ContactService *service.ContactService
	Metrics        *monitoring.Metrics
	Health         *health.Checker
	RateLimiter    *middleware.RateLimiter
	Logger         *zap.Logger
}

// NewRouter は Gin ルータを構築する。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Logger, deps.Metrics))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodySizeLimit(contactBodyLimit))

	if deps.Metrics != nil {
		router.Use(middleware.HTTPMetrics(deps.Metrics))
	}

	// CORS 設定
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// すべての来源を許可する場合は資格情報を無効にする
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// POST 以外のメソッドは 405 で拒否する
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		respond(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	contactHandler := NewContactHandler(deps.ContactService, deps.Logger)
	publicHandler := NewPublicHandler(deps.Config.Recaptcha)

	// ヘルスチェック
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Health != nil {
		router.GET("/live", gin.WrapF(deps.Health.LiveEndpoint))
		router.GET("/ready", gin.WrapF(deps.Health.ReadyEndpoint))
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/config", publicHandler.GetConfig)

		submit := api.Group("")
		if deps.RateLimiter != nil {
			submit.Use(deps.RateLimiter.Limit())
		}
		submit.POST("/contact", contactHandler.Submit)
	}

	return router
}
