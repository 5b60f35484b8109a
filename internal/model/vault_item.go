package model

// VaultItem 仓库条目表
// ItemID 为对外暴露的不透明 ID，ID 仅作为同一毫秒内的排序兜底
type VaultItem struct {
	ID         int64   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ItemID     string  `gorm:"column:item_id;type:varchar(36);not null;uniqueIndex" json:"id"`
	OwnerID    *string `gorm:"column:owner_id;type:varchar(191);index" json:"ownerId"`
	Type       string  `gorm:"column:type;type:varchar(16);not null;index:idx_vault_item_type" json:"type"`
	Category   string  `gorm:"column:category;type:varchar(16);not null;index:idx_vault_item_category" json:"category"`
	ContentURL *string `gorm:"column:content_url;type:text" json:"contentUrl"`
	Text       *string `gorm:"column:text;type:text" json:"text"`
	Title      *string `gorm:"column:title;type:varchar(512)" json:"title"`
	Tags       *string `gorm:"column:tags;type:text" json:"tags"`
	Summary    *string `gorm:"column:summary;type:text" json:"summary"`
	CreatedAt  int64   `gorm:"column:created_at;not null;index;autoCreateTime:milli" json:"createdAt"` // Unix 毫秒
}
