package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// vaultItemRepository 实现 domain.VaultItemRepository 接口
type vaultItemRepository struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

var _ domain.VaultItemRepository = (*vaultItemRepository)(nil)

// RepositoryOption 仓储选项
type RepositoryOption func(*vaultItemRepository)

// WithClock 替换写入时使用的时钟
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *vaultItemRepository) {
		r.now = now
	}
}

// WithIDGenerator 替换条目 ID 生成器
func WithIDGenerator(newID func() string) RepositoryOption {
	return func(r *vaultItemRepository) {
		r.newID = newID
	}
}

// NewVaultItemRepository 创建 VaultItemRepository 实例
func NewVaultItemRepository(db *gorm.DB, opts ...RepositoryOption) domain.VaultItemRepository {
	r := &vaultItemRepository{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// toDomain 将数据库模型转换为领域模型
func (r *vaultItemRepository) toDomain(m *model.VaultItem) *domain.VaultItem {
	if m == nil {
		return nil
	}
	owner := domain.Public
	if m.OwnerID != nil && *m.OwnerID != "" {
		owner = domain.Owned(*m.OwnerID)
	}
	return &domain.VaultItem{
		ID:         m.ItemID,
		Owner:      owner,
		Type:       domain.ItemType(m.Type),
		Category:   domain.Category(m.Category),
		ContentURL: m.ContentURL,
		Text:       m.Text,
		Title:      m.Title,
		Tags:       m.Tags,
		Summary:    m.Summary,
		CreatedAt:  time.UnixMilli(m.CreatedAt).UTC(),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *vaultItemRepository) toModel(item *domain.VaultItem) *model.VaultItem {
	if item == nil {
		return nil
	}
	m := &model.VaultItem{
		ItemID:     item.ID,
		Type:       string(item.Type),
		Category:   string(item.Category),
		ContentURL: item.ContentURL,
		Text:       item.Text,
		Title:      item.Title,
		Tags:       item.Tags,
		Summary:    item.Summary,
		CreatedAt:  item.CreatedAt.UnixMilli(),
	}
	if id, ok := item.Owner.ID(); ok {
		m.OwnerID = &id
	}
	return m
}

// Insert 写入新条目，ID 与创建时间由仓储分配
func (r *vaultItemRepository) Insert(ctx context.Context, item *domain.VaultItem) (*domain.VaultItem, error) {
	toInsert := *item
	toInsert.ID = r.newID()
	toInsert.CreatedAt = r.now()

	m := r.toModel(&toInsert)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "vault_item insert")
	}
	return r.toDomain(m), nil
}

// GetByID 根据 ID 获取条目
func (r *vaultItemRepository) GetByID(ctx context.Context, id string) (*domain.VaultItem, error) {
	var m model.VaultItem
	err := r.db.WithContext(ctx).Where(map[string]interface{}{"item_id": id}).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrVaultItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "vault_item get")
	}
	return r.toDomain(&m), nil
}

// List 列出调用者可见的条目
// 公开调用者只能看到公开条目；指定所有者可以看到自己的条目与公开条目
func (r *vaultItemRepository) List(ctx context.Context, caller domain.Owner, filter domain.ListFilter) ([]*domain.VaultItem, error) {
	q := r.db.WithContext(ctx).Model(&model.VaultItem{})

	if id, ok := caller.ID(); ok {
		q = q.Where(r.db.Where(map[string]interface{}{"owner_id": id}).Or("owner_id IS NULL"))
	} else {
		q = q.Where("owner_id IS NULL")
	}

	if filter.Type != nil {
		q = q.Where(map[string]interface{}{"type": string(*filter.Type)})
	}
	if filter.Category != nil {
		q = q.Where(map[string]interface{}{"category": string(*filter.Category)})
	}

	var ms []*model.VaultItem
	if err := q.Order("created_at DESC").Order("id DESC").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "vault_item list")
	}

	items := make([]*domain.VaultItem, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toDomain(m))
	}
	return items, nil
}

// DeleteByID 按 ID 删除条目，不校验所有者
func (r *vaultItemRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where(map[string]interface{}{"item_id": id}).Delete(&model.VaultItem{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "vault_item delete")
	}
	if res.RowsAffected == 0 {
		return domain.ErrVaultItemNotFound
	}
	return nil
}
