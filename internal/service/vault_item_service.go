package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"go.uber.org/zap"
)

// VaultItemService lists and deletes indexed items
// VaultItemService 列出与删除已索引的条目
type VaultItemService interface {
	// List 列出调用者可见的条目，按创建时间倒序
	List(ctx context.Context, caller domain.Owner, filter domain.ListFilter) ([]*domain.VaultItem, error)

	// Delete 按删除策略删除条目
	Delete(ctx context.Context, caller domain.Owner, id string) error
}

type vaultItemService struct {
	repo   domain.VaultItemRepository
	policy DeletePolicy
	logger *zap.Logger
}

var _ VaultItemService = (*vaultItemService)(nil)

// NewVaultItemService 创建 VaultItemService 实例
func NewVaultItemService(repo domain.VaultItemRepository, cfg *ServiceConfig, lg *zap.Logger) VaultItemService {
	policy := DeletePolicyOwner
	if cfg != nil && cfg.Security.DeletePolicy != "" {
		policy = cfg.Security.DeletePolicy
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &vaultItemService{repo: repo, policy: policy, logger: lg}
}

func (s *vaultItemService) List(ctx context.Context, caller domain.Owner, filter domain.ListFilter) ([]*domain.VaultItem, error) {
	items, err := s.repo.List(ctx, caller, filter)
	if err != nil {
		s.logger.Error("vault item list failed", zap.String(logger.FieldOwner, caller.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", code.ErrorDBQuery, err)
	}
	return items, nil
}

func (s *vaultItemService) Delete(ctx context.Context, caller domain.Owner, id string) error {
	if id == "" {
		return code.ErrorInvalidParams.WithDetails("id is required")
	}

	if s.policy == DeletePolicyOwner {
		item, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return s.mapRepoError(err, id)
		}
		if !item.VisibleTo(caller) {
			s.logger.Warn("vault item delete forbidden",
				zap.String(logger.FieldItemID, id),
				zap.String(logger.FieldOwner, caller.String()),
			)
			return code.ErrorVaultItemDeleteForbidden
		}
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.logger.Info("vault item deleted",
		zap.String(logger.FieldItemID, id),
		zap.String(logger.FieldOwner, caller.String()),
	)
	return nil
}

func (s *vaultItemService) mapRepoError(err error, id string) error {
	if errors.Is(err, domain.ErrVaultItemNotFound) {
		return code.ErrorVaultItemNotFound
	}
	s.logger.Error("vault item index failure", zap.String(logger.FieldItemID, id), zap.Error(err))
	return fmt.Errorf("%w: %w", code.ErrorDBQuery, err)
}
