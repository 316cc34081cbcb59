package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiterConfig 限流配置
//
// Rate: "100-M"、"1000-H" 等格式；SkipPaths 前缀匹配。
// Store 采用内存，单实例部署下无需外部存储。
type RateLimiterConfig struct {
	Rate       string   `json:"rate"`
	SkipPaths  []string `json:"skip_paths"`
	AddHeaders bool     `json:"add_headers"`
}

// MetricsObserver 指标上报接口
type MetricsObserver interface {
	OnAllow(route string)
	OnDeny(route string)
}

// RateLimiter wraps a ulule limiter with path skipping and optional metrics.
type RateLimiter struct {
	cfg      RateLimiterConfig
	lim      *limiter.Limiter
	observer MetricsObserver
}

// NewRateLimiter 构造函数，避免全局依赖
func NewRateLimiter(cfg RateLimiterConfig, store limiter.Store) (*RateLimiter, error) {
	if store == nil {
		store = memory.NewStore()
	}
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{cfg: cfg, lim: limiter.New(store, rate)}, nil
}

// WithObserver 配置指标观察者
func (l *RateLimiter) WithObserver(observer MetricsObserver) *RateLimiter {
	l.observer = observer
	return l
}

// Middleware 返回 Gin 中间件
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range l.cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		key := c.ClientIP()
		lctx, err := l.lim.Get(c, key)
		if err != nil {
			// 限流器故障时放行，不阻塞业务
			c.Next()
			return
		}
		if l.cfg.AddHeaders {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
		}
		if lctx.Reached {
			retry := time.Until(time.Unix(lctx.Reset, 0))
			if retry > 0 {
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			}
			if l.observer != nil {
				l.observer.OnDeny(routeOf(c))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": 429, "message": "too many requests"})
			return
		}

		if l.observer != nil {
			l.observer.OnAllow(routeOf(c))
		}
		c.Next()
	}
}

func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}
