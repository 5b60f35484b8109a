// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/dao"
	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/internal/service"
	pkgapp "github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB

	StartTime time.Time

	// Repository 层
	VaultItemRepo domain.VaultItemRepository

	// 存储后端
	Storage storage.Storager

	// Service 层
	IngestService    service.IngestService
	VaultItemService service.VaultItemService
	Metrics          *service.IngestMetrics

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 关闭控制
	shutdownCh chan struct{}
}

// Option 容器可选项
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	storage    storage.Storager
}

// WithRegisterer 指定指标注册器，默认使用 prometheus.DefaultRegisterer
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithStorage 使用给定的存储实现替代按配置创建的后端
func WithStorage(st storage.Storager) Option {
	return func(o *options) { o.storage = st }
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 存储后端只在启动时选择一次
	a.Storage = o.storage
	if a.Storage == nil {
		client, err := storage.NewClient(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		a.Storage = client
	}

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
		Issuer:    pkgapp.DefaultTokenIssuer,
	})

	// 初始化 Repository 层
	a.VaultItemRepo = dao.NewVaultItemRepository(db)

	// 初始化 Service 层（依赖注入）
	a.Metrics = service.NewIngestMetrics(o.registerer)
	a.IngestService = service.NewIngestService(service.NewIngestValidator(), a.Storage, a.VaultItemRepo, a.Metrics, logger)
	a.VaultItemService = service.NewVaultItemService(a.VaultItemRepo, cfg.GetServiceConfig(), logger)

	logger.Info("App container initialized successfully",
		zap.String("storageType", cfg.Storage.Type),
		zap.String("deletePolicy", cfg.Security.DeletePolicy))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Ping 检查数据库连接
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 请求之间没有后台任务，只需关闭数据库连接
func (a *App) Shutdown(ctx context.Context) error {
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	a.logger.Info("App container shutting down...")

	done := make(chan error, 1)
	go func() { done <- a.Close() }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}
