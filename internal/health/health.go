package health

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
)

// Checker はサービスの死活・準備状態を公開する。
// readiness はメールリレーへ TCP で到達できるかを見る。
// リレーに届かない状態で受け付けても送信は必ず失敗するため。
type Checker struct {
	handler healthcheck.Handler
	logger  *zap.Logger
}

// NewChecker はヘルスチェッカーを生成する。
func NewChecker(smtp config.SMTPConfig, logger *zap.Logger) *Checker {
	c := &Checker{
		handler: healthcheck.NewHandler(),
		logger:  logger,
	}

	c.handler.AddLivenessCheck("goroutine-threshold",
		healthcheck.GoroutineCountCheck(200))

	relayAddr := net.JoinHostPort(smtp.Host, strconv.Itoa(smtp.Port))
	c.handler.AddReadinessCheck("mail-relay", func() error {
		conn, err := net.DialTimeout("tcp", relayAddr, 3*time.Second)
		if err != nil {
			return fmt.Errorf("mail relay unreachable: %w", err)
		}
		return conn.Close()
	})

	return c
}

// LiveEndpoint は /live のハンドラ。
func (c *Checker) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	c.handler.LiveEndpoint(w, r)
}

// ReadyEndpoint は /ready のハンドラ。
func (c *Checker) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	c.handler.ReadyEndpoint(w, r)
}
