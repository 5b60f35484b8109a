// Package domain 定义领域模型和接口
package domain

import "context"

// VaultItemRepository 仓库条目索引接口
type VaultItemRepository interface {
	// Insert 写入新条目，分配 ID 与创建时间
	Insert(ctx context.Context, item *VaultItem) (*VaultItem, error)

	// GetByID 根据 ID 获取条目，不存在时返回 ErrVaultItemNotFound
	GetByID(ctx context.Context, id string) (*VaultItem, error)

	// List 列出调用者可见的条目，按创建时间倒序
	List(ctx context.Context, caller Owner, filter ListFilter) ([]*VaultItem, error)

	// DeleteByID 按 ID 无条件删除，不存在时返回 ErrVaultItemNotFound
	DeleteByID(ctx context.Context, id string) error
}
