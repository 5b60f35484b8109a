package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:        "sqlite",
		Path:        ":memory:",
		AutoMigrate: true,
	}, nil)
	require.NoError(t, err)
	return db
}

// steppingClock 每次调用前进 1 毫秒
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}
}

func strPtr(s string) *string { return &s }

func newTestRepo(t *testing.T) domain.VaultItemRepository {
	return NewVaultItemRepository(newTestDB(t), WithClock(steppingClock(time.UnixMilli(1700000000000))))
}

func insert(t *testing.T, repo domain.VaultItemRepository, owner domain.Owner, itemType domain.ItemType) *domain.VaultItem {
	t.Helper()
	item := &domain.VaultItem{
		Owner:    owner,
		Type:     itemType,
		Category: domain.CategoryOf(itemType),
	}
	if itemType.IsBinary() {
		item.ContentURL = strPtr("/uploads/" + string(itemType))
	} else {
		item.Text = strPtr("text")
	}
	saved, err := repo.Insert(context.Background(), item)
	require.NoError(t, err)
	return saved
}

func TestVaultItemRepository_Insert(t *testing.T) {
	repo := newTestRepo(t)

	saved, err := repo.Insert(context.Background(), &domain.VaultItem{
		Owner:    domain.Owned("u1"),
		Type:     domain.ItemTypeNote,
		Category: domain.CategoryNotes,
		Text:     strPtr("buy milk"),
		Title:    strPtr("todo"),
	})
	require.NoError(t, err)

	assert.Len(t, saved.ID, 36)
	assert.Equal(t, int64(1700000000001), saved.CreatedAt.UnixMilli())
	assert.Nil(t, saved.Tags)
	assert.Nil(t, saved.Summary)
	assert.Nil(t, saved.ContentURL)

	got, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestVaultItemRepository_InsertPublic(t *testing.T) {
	repo := newTestRepo(t)
	saved := insert(t, repo, domain.Public, domain.ItemTypeImage)

	got, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Owner.IsPublic())
	assert.Equal(t, "/uploads/image", *got.ContentURL)
}

func TestVaultItemRepository_ListVisibility(t *testing.T) {
	repo := newTestRepo(t)
	pub := insert(t, repo, domain.Public, domain.ItemTypeNote)
	a := insert(t, repo, domain.Owned("A"), domain.ItemTypeImage)
	b := insert(t, repo, domain.Owned("B"), domain.ItemTypeLink)

	ctx := context.Background()

	items, err := repo.List(ctx, domain.Public, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{pub.ID}, ids(items))

	items, err = repo.List(ctx, domain.Owned("A"), domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, pub.ID}, ids(items))

	items, err = repo.List(ctx, domain.Owned("B"), domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, pub.ID}, ids(items))

	items, err = repo.List(ctx, domain.Owned("C"), domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{pub.ID}, ids(items))
}

func TestVaultItemRepository_ListOrderAndFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var inserted []*domain.VaultItem
	for _, it := range []domain.ItemType{
		domain.ItemTypeImage, domain.ItemTypeNote, domain.ItemTypeVideo,
		domain.ItemTypeLink, domain.ItemTypeVoice, domain.ItemTypeNote,
	} {
		inserted = append(inserted, insert(t, repo, domain.Owned("A"), it))
	}

	items, err := repo.List(ctx, domain.Owned("A"), domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 6)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "newest first")
	}
	assert.Equal(t, inserted[5].ID, items[0].ID)

	media := domain.CategoryMedia
	items, err = repo.List(ctx, domain.Owned("A"), domain.ListFilter{Category: &media})
	require.NoError(t, err)
	assert.Equal(t, []string{inserted[4].ID, inserted[2].ID, inserted[0].ID}, ids(items))

	note := domain.ItemTypeNote
	items, err = repo.List(ctx, domain.Owned("A"), domain.ListFilter{Type: &note})
	require.NoError(t, err)
	assert.Equal(t, []string{inserted[5].ID, inserted[1].ID}, ids(items))

	// 类型与分类同时给出时取交集
	items, err = repo.List(ctx, domain.Owned("A"), domain.ListFilter{Type: &note, Category: &media})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestVaultItemRepository_SameMillisecondOrder(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	repo := NewVaultItemRepository(newTestDB(t), WithClock(func() time.Time { return fixed }))

	first := insert(t, repo, domain.Public, domain.ItemTypeNote)
	second := insert(t, repo, domain.Public, domain.ItemTypeNote)

	items, err := repo.List(context.Background(), domain.Public, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(items))
}

func TestVaultItemRepository_DeleteByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	item := insert(t, repo, domain.Owned("A"), domain.ItemTypeVoice)

	require.NoError(t, repo.DeleteByID(ctx, item.ID))

	_, err := repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrVaultItemNotFound)

	err = repo.DeleteByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrVaultItemNotFound)

	err = repo.DeleteByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrVaultItemNotFound)
}

func TestVaultItemRepository_UniqueIDs(t *testing.T) {
	repo := newTestRepo(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		item := insert(t, repo, domain.Public, domain.ItemTypeLink)
		assert.False(t, seen[item.ID], fmt.Sprintf("duplicate id %s", item.ID))
		seen[item.ID] = true
	}
}

func TestNewDBEngineWithConfig_UnsupportedType(t *testing.T) {
	_, err := NewDBEngineWithConfig(DatabaseConfig{Type: "oracle"}, nil)
	assert.Error(t, err)
}

func ids(items []*domain.VaultItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
