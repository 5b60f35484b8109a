// Package limiter provides token bucket rate limiting keyed by route
// limiter 提供按路由划分的令牌桶限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face limiter interface consumed by the middleware
// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule token bucket rule
// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // Route key // 路由键
	FillInterval time.Duration // Interval between refills // 填充间隔
	Capacity     int64         // Bucket capacity // 桶容量
	Quantum      int64         // Tokens added per interval // 每次填充的令牌数
}

// Limiter holds buckets built at startup; buckets are read-only afterwards
// Limiter 保存启动时创建的令牌桶，之后只读
type Limiter struct {
	buckets map[string]*ratelimit.Bucket
}
