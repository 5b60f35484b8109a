package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrVaultItemNotFound is returned by the index when no item matches the id
// ErrVaultItemNotFound 索引中不存在对应 ID 的条目
var ErrVaultItemNotFound = errors.New("vault item not found")

// ItemType 条目类型，封闭集合
type ItemType string

const (
	ItemTypeImage ItemType = "image"
	ItemTypeVideo ItemType = "video"
	ItemTypeVoice ItemType = "voice"
	ItemTypeNote  ItemType = "note"
	ItemTypeLink  ItemType = "link"
)

// ItemTypes lists every item type in display order
// ItemTypes 按展示顺序列出所有条目类型
var ItemTypes = []ItemType{ItemTypeImage, ItemTypeVideo, ItemTypeVoice, ItemTypeNote, ItemTypeLink}

// ParseItemType returns false for unknown or empty values
// ParseItemType 未知或空值时返回 false
func ParseItemType(s string) (ItemType, bool) {
	for _, t := range ItemTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsBinary image, video and voice carry a stored payload
// IsBinary image、video、voice 携带存储的二进制内容
func (t ItemType) IsBinary() bool {
	return t == ItemTypeImage || t == ItemTypeVideo || t == ItemTypeVoice
}

// IsText note and link carry inline text
// IsText note 与 link 携带内联文本
func (t ItemType) IsText() bool {
	return t == ItemTypeNote || t == ItemTypeLink
}

// Category 条目分类，由类型推导
type Category string

const (
	CategoryMedia Category = "Media"
	CategoryNotes Category = "Notes"
	CategoryLinks Category = "Links"
)

// Categories lists every category
// Categories 列出所有分类
var Categories = []Category{CategoryMedia, CategoryNotes, CategoryLinks}

// CategoryOf maps an item type to its category.
// Binary types are Media, note is Notes and link is Links.
// CategoryOf 将条目类型映射到分类：二进制类型为 Media，note 为 Notes，link 为 Links
func CategoryOf(t ItemType) Category {
	switch t {
	case ItemTypeNote:
		return CategoryNotes
	case ItemTypeLink:
		return CategoryLinks
	default:
		return CategoryMedia
	}
}

// Owner is either a specific owner id or Public.
// The zero value is Public.
// Owner 所有者，要么是具体的所有者 ID，要么是公开；零值为公开
type Owner struct {
	id string
}

// Public 公开（无所有者）
var Public = Owner{}

// Owned 指定所有者
func Owned(id string) Owner {
	return Owner{id: id}
}

// IsPublic 是否为公开
func (o Owner) IsPublic() bool {
	return o.id == ""
}

// ID returns the owner id and false for Public
// ID 返回所有者 ID，公开时第二个返回值为 false
func (o Owner) ID() (string, bool) {
	return o.id, o.id != ""
}

func (o Owner) String() string {
	if o.IsPublic() {
		return "public"
	}
	return "owner:" + o.id
}

// MarshalJSON renders the owner id or null
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.IsPublic() {
		return []byte("null"), nil
	}
	return json.Marshal(o.id)
}

// VaultItem 仓库条目领域模型
type VaultItem struct {
	ID         string
	Owner      Owner
	Type       ItemType
	Category   Category
	ContentURL *string
	Text       *string
	Title      *string
	Tags       *string
	Summary    *string
	CreatedAt  time.Time
}

// VisibleTo reports whether the caller may see the item:
// public items are visible to everyone, owned items only to their owner.
// VisibleTo 判断调用者是否可见：公开条目对所有人可见，私有条目仅对所有者可见
func (v *VaultItem) VisibleTo(caller Owner) bool {
	if v.Owner.IsPublic() {
		return true
	}
	return v.Owner == caller
}

// ListFilter optional exact-match filters, combined with AND
// ListFilter 可选的精确匹配过滤条件，同时给出时取交集
type ListFilter struct {
	Type     *ItemType
	Category *Category
}

// Matches 判断条目是否满足过滤条件
func (f ListFilter) Matches(v *VaultItem) bool {
	if f.Type != nil && v.Type != *f.Type {
		return false
	}
	if f.Category != nil && v.Category != *f.Category {
		return false
	}
	return true
}
