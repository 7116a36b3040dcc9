package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/context"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter 按 key 维护独立的令牌桶，闲置超过 limiterIdleTTL 的条目会被回收.
type keyedLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	swept    time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{visitors: map[string]*visitor{}, rps: rate.Limit(rps), burst: burst, swept: time.Now()}
}

func (k *keyedLimiter) allow(key string) bool {
	now := time.Now()

	k.mu.Lock()
	defer k.mu.Unlock()

	if now.Sub(k.swept) > limiterSweepInterval {
		for id, v := range k.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(k.visitors, id)
			}
		}

		k.swept = now
	}

	v, ok := k.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(k.rps, k.burst)}
		k.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// RateLimitMiddleware 返回一个基于配置的限流中间件.
// Key 取值：global、ip、uploader（身份头，缺失时回退到 IP）或 header:Header-Name.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Key))

	if mode == "" || mode == "global" {
		limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !limiter.Allow() {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
				return
			}

			c.Next()
		}
	}

	limiters := newKeyedLimiter(cfg.RPS, cfg.Burst)

	return func(c *gin.Context) {
		if !limiters.allow(limitKey(c, mode)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

func limitKey(c *gin.Context, mode string) string {
	var key string

	switch {
	case strings.HasPrefix(mode, "header:"):
		key = c.GetHeader(strings.TrimPrefix(mode, "header:"))
	case mode == "uploader":
		key = context.GetUploader(c.Request.Context())
	}

	if key == "" {
		key = clientIP(c)
	}

	if key == "" {
		key = "unknown"
	}

	return key
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return host
}
