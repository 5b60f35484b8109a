// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/haierkeys/fast-vault-service/internal/domain"

	"github.com/jinzhu/copier"
)

// VaultItemDTO Vault item data transfer object
// VaultItemDTO 仓库条目数据传输对象
type VaultItemDTO struct {
	ID         string    `json:"id"`
	OwnerID    *string   `json:"ownerId"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	ContentURL *string   `json:"contentUrl"`
	Text       *string   `json:"text"`
	Title      *string   `json:"title"`
	Tags       *string   `json:"tags"`
	Summary    *string   `json:"summary"`
	CreatedAt  time.Time `json:"createdAt"`
}

// VaultItemCreateRequest multipart form fields for ingesting one item; the file part is read separately
// VaultItemCreateRequest 入库一个条目的 multipart 表单字段，文件部分单独读取
type VaultItemCreateRequest struct {
	Type  string  `json:"type" form:"type"`
	Text  *string `json:"text" form:"text"`
	Title *string `json:"title" form:"title"`
}

// VaultItemListRequest Request parameters for listing vault items
// VaultItemListRequest 列出仓库条目的请求参数
type VaultItemListRequest struct {
	Type     string `json:"type" form:"type" binding:"omitempty,oneof=image video voice note link"`
	Category string `json:"category" form:"category" binding:"omitempty,oneof=Media Notes Links"`
}

// Filter converts the request into a domain list filter
// Filter 将请求转换为领域层过滤条件
func (r *VaultItemListRequest) Filter() domain.ListFilter {
	var f domain.ListFilter
	if r.Type != "" {
		t := domain.ItemType(r.Type)
		f.Type = &t
	}
	if r.Category != "" {
		c := domain.Category(r.Category)
		f.Category = &c
	}
	return f
}

// VaultItemDeleteRequest Request parameters for deleting a vault item
// VaultItemDeleteRequest 删除仓库条目的请求参数
type VaultItemDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// NewVaultItemDTO converts a domain item to its transport shape
// NewVaultItemDTO 将领域条目转换为传输结构
func NewVaultItemDTO(item *domain.VaultItem) *VaultItemDTO {
	if item == nil {
		return nil
	}
	d := &VaultItemDTO{}
	// 同名字段直接复制，Owner 与枚举类型单独处理
	_ = copier.Copy(d, item)
	if id, ok := item.Owner.ID(); ok {
		d.OwnerID = &id
	} else {
		d.OwnerID = nil
	}
	d.Type = string(item.Type)
	d.Category = string(item.Category)
	return d
}

// NewVaultItemDTOs converts a list of domain items
// NewVaultItemDTOs 批量转换领域条目
func NewVaultItemDTOs(items []*domain.VaultItem) []*VaultItemDTO {
	out := make([]*VaultItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, NewVaultItemDTO(item))
	}
	return out
}
