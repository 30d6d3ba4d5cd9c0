package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ipLimiter は IP ひとつ分のリミッタと最終アクセス時刻。
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter はクライアント IP ごとのトークンバケット制限。
// CAPTCHA と並ぶ送信エンドポイントの濫用対策。状態はプロセス内にだけ持つ
// （永続化するものが何もないため、外部ストア無しで足りる）。
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	logger   *zap.Logger
}

// NewRateLimiter は IP ごとのレートリミッタを生成する。
// interval ごとに 1 リクエスト、バースト burst まで許容する。
func NewRateLimiter(interval time.Duration, burst int, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Every(interval),
		burst:    burst,
		logger:   logger,
	}

	// 使われなくなったエントリの掃除
	go rl.cleanupLoop()

	return rl
}

// Limit はレート制限ミドルウェアを返す。
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.allow(ip) {
			rl.logger.Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "リクエストが多すぎます。しばらくしてからお試しください",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-30 * time.Minute)

		rl.mu.Lock()
		for ip, entry := range rl.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(rl.limiters, ip)
			}
		}
		rl.mu.Unlock()
	}
}
