package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVaultItemDTO_JSONShape(t *testing.T) {
	url := "/uploads/image-1700000000000-abcdefgh.png"
	title := "cat.png"
	item := &domain.VaultItem{
		ID:         "id-1",
		Owner:      domain.Owned("u1"),
		Type:       domain.ItemTypeImage,
		Category:   domain.CategoryMedia,
		ContentURL: &url,
		Title:      &title,
		CreatedAt:  time.UnixMilli(1700000000000).UTC(),
	}

	raw, err := json.Marshal(NewVaultItemDTO(item))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "id-1", got["id"])
	assert.Equal(t, "u1", got["ownerId"])
	assert.Equal(t, "image", got["type"])
	assert.Equal(t, "Media", got["category"])
	assert.Equal(t, url, got["contentUrl"])
	assert.Equal(t, "cat.png", got["title"])
	assert.Equal(t, "2023-11-14T22:13:20Z", got["createdAt"])
	for _, k := range []string{"text", "tags", "summary"} {
		v, ok := got[k]
		assert.True(t, ok, k)
		assert.Nil(t, v, k)
	}
}

func TestNewVaultItemDTO_PublicOwnerIsNull(t *testing.T) {
	text := "hello"
	d := NewVaultItemDTO(&domain.VaultItem{ID: "n", Owner: domain.Public, Type: domain.ItemTypeNote, Category: domain.CategoryNotes, Text: &text})

	assert.Nil(t, d.OwnerID)
	assert.Equal(t, "hello", *d.Text)
	assert.Nil(t, d.ContentURL)
	assert.Nil(t, NewVaultItemDTO(nil))
	assert.Empty(t, NewVaultItemDTOs(nil))
}

func TestVaultItemListRequest_Filter(t *testing.T) {
	f := (&VaultItemListRequest{}).Filter()
	assert.Nil(t, f.Type)
	assert.Nil(t, f.Category)

	f = (&VaultItemListRequest{Type: "video", Category: "Media"}).Filter()
	assert.Equal(t, domain.ItemTypeVideo, *f.Type)
	assert.Equal(t, domain.CategoryMedia, *f.Category)
}
