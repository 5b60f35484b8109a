package routers

import (
	"net/http"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/app"
	"github.com/haierkeys/fast-vault-service/internal/middleware"
	"github.com/haierkeys/fast-vault-service/internal/routers/api_router"
	"github.com/haierkeys/fast-vault-service/pkg/limiter"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 写入接口的限流规则，键为 "METHOD 路由"
func newMethodLimiters() limiter.Face {
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "POST /api/vault/items",
			FillInterval: time.Second,
			Capacity:     20,
			Quantum:      20,
		},
		limiter.BucketRule{
			Key:          "DELETE /api/vault/items",
			FillInterval: time.Second,
			Capacity:     20,
			Quantum:      20,
		},
	)
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.MaxMultipartMemory = cfg.App.MaxMultipartMemory
	r.Use(middleware.Cors())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RateLimiter(newMethodLimiters()))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))

		// 创建 Handlers（注入 App Container）
		healthHandler := api_router.NewHealthHandler(appContainer)
		vaultItemHandler := api_router.NewVaultItemHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		// 会话令牌可选，没有令牌时按公开处理
		items := api.Group("/vault/items", middleware.SessionTokenWithConfig(cfg.Security.AuthTokenKey))
		items.POST("", vaultItemHandler.Create)
		items.GET("", vaultItemHandler.List)
		items.DELETE("", vaultItemHandler.Delete)
	}

	// 本地存储的对象通过 url-prefix 直接提供下载
	if cfg.Storage.Type == storage.LOCAL && cfg.Storage.URLPrefix != "" && cfg.Storage.SavePath != "" {
		r.StaticFS(cfg.Storage.URLPrefix, http.Dir(cfg.Storage.SavePath))
	}
	r.NoRoute(middleware.LangWithTranslator(uni), middleware.NoFound())

	return r
}
