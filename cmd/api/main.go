package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/health"
	"corporate-site/backend/internal/logger"
	"corporate-site/backend/internal/mailer"
	"corporate-site/backend/internal/middleware"
	"corporate-site/backend/internal/monitoring"
	"corporate-site/backend/internal/service"
	httptransport "corporate-site/backend/internal/transport/http"
)

// main はお問い合わせ API サーバのエントリポイント。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// Gin モードの設定（開発フラグに基づく）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// ログ初期化
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     cfg.Log.File,
		MaxSize:     cfg.Log.MaxSize,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAge:      cfg.Log.MaxAge,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()
	log.Info("starting contact API server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// サイトキー未設定でも起動は継続する。フォーム側のウィジェットが
	// 描画されないだけで、API 自体の受付には影響しない
	if cfg.Recaptcha.SiteKey == "" {
		log.Warn("recaptcha site key is not configured, widget will not render")
	}

	// メトリクス
	metrics := monitoring.NewMetrics()

	// SMTP リレー経由のメーラー
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, log)
	log.Info("smtp relay configured",
		zap.String("host", cfg.SMTP.Host),
		zap.Int("port", cfg.SMTP.Port),
		zap.Bool("secure", cfg.SMTP.Secure),
	)

	// サービス層
	contactService := service.NewContactService(smtpMailer, cfg.Mail, log)
	contactService.SetMetrics(metrics)

	// ヘルスチェック（SMTP リレー到達性を readiness に含める）
	checker := health.NewChecker(cfg.SMTP, log)

	// 送信エンドポイントのレート制限: IP ごとに 10 秒間隔、バースト 3
	rateLimiter := middleware.NewRateLimiter(10*time.Second, 3, log)

	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:         cfg,
		ContactService: contactService,
		Metrics:        metrics,
		Health:         checker,
		RateLimiter:    rateLimiter,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号処理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("API server listening", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server stopped cleanly")
	}
}
