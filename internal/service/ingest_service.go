package service

import (
	"context"
	"fmt"

	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/logger"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"go.uber.org/zap"
)

// IngestRequest one item submitted by a caller
// IngestRequest 调用者提交的一个条目
type IngestRequest struct {
	Owner domain.Owner
	Type  string
	File  *FilePart
	Text  *string
	Title *string
}

// IngestService validates, stores and indexes submitted items
// IngestService 校验、存储并索引提交的条目
type IngestService interface {
	// Ingest returns the persisted item.
	// Validation failures are returned as *code.Code, storage failures match
	// code.ErrorUploadFileFailed and index failures match code.ErrorDBQuery.
	Ingest(ctx context.Context, req *IngestRequest) (*domain.VaultItem, error)
}

type ingestService struct {
	validator *IngestValidator
	storage   storage.Storager
	repo      domain.VaultItemRepository
	metrics   *IngestMetrics
	logger    *zap.Logger
}

var _ IngestService = (*ingestService)(nil)

// NewIngestService 创建 IngestService 实例
func NewIngestService(v *IngestValidator, st storage.Storager, repo domain.VaultItemRepository, metrics *IngestMetrics, lg *zap.Logger) IngestService {
	if v == nil {
		v = NewIngestValidator()
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &ingestService{
		validator: v,
		storage:   st,
		repo:      repo,
		metrics:   metrics,
		logger:    lg,
	}
}

func (s *ingestService) Ingest(ctx context.Context, req *IngestRequest) (*domain.VaultItem, error) {
	// 1. 校验
	valid, err := s.validator.Validate(&Submission{
		Type:  req.Type,
		File:  req.File,
		Text:  req.Text,
		Title: req.Title,
	})
	if err != nil {
		s.metrics.observe(metricsTypeLabel(req.Type), ResultInvalid)
		return nil, err
	}

	item := &domain.VaultItem{
		Owner:    req.Owner,
		Type:     valid.Type,
		Category: domain.CategoryOf(valid.Type),
		Title:    resolveTitle(valid),
	}

	// 2. 二进制类型先写存储，失败时不写索引
	if valid.Type.IsBinary() {
		url, err := s.storage.Store(ctx, valid.File.Body, valid.File.Size, valid.File.Filename, string(valid.Type))
		if err != nil {
			s.metrics.observe(string(valid.Type), ResultStorageError)
			s.logger.Error("ingest store failed",
				zap.String(logger.FieldOwner, req.Owner.String()),
				zap.String(logger.FieldItemType, string(valid.Type)),
				zap.Int64(logger.FieldSize, valid.File.Size),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", code.ErrorUploadFileFailed, err)
		}
		item.ContentURL = &url
		s.metrics.addBytes(string(valid.Type), valid.File.Size)
	} else {
		item.Text = valid.Text
	}

	// 3. 写索引，tags 与 summary 始终为空
	saved, err := s.repo.Insert(ctx, item)
	if err != nil {
		s.metrics.observe(string(valid.Type), ResultIndexError)
		fields := []zap.Field{
			zap.String(logger.FieldOwner, req.Owner.String()),
			zap.String(logger.FieldItemType, string(valid.Type)),
			zap.Error(err),
		}
		if item.ContentURL != nil {
			// 已写入存储的对象成为孤儿，记录下来以便人工清理
			fields = append(fields, zap.String(logger.FieldURL, *item.ContentURL))
		}
		s.logger.Error("ingest index insert failed", fields...)
		return nil, fmt.Errorf("%w: %w", code.ErrorDBQuery, err)
	}

	s.metrics.observe(string(valid.Type), ResultOK)
	s.logger.Info("ingest item saved",
		zap.String(logger.FieldItemID, saved.ID),
		zap.String(logger.FieldOwner, saved.Owner.String()),
		zap.String(logger.FieldItemType, string(saved.Type)),
	)
	return saved, nil
}

// resolveTitle caller title, else the original filename for binary types, else nil
// resolveTitle 优先使用调用者标题，二进制类型回退到原始文件名，否则为空
func resolveTitle(v *ValidatedSubmission) *string {
	if v.Title != nil && *v.Title != "" {
		return v.Title
	}
	if v.Type.IsBinary() && v.File != nil && v.File.Filename != "" {
		name := v.File.Filename
		return &name
	}
	return nil
}

// metricsTypeLabel keeps label cardinality bounded
func metricsTypeLabel(s string) string {
	if t, ok := domain.ParseItemType(s); ok {
		return string(t)
	}
	return "unknown"
}
