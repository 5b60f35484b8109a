package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/dao"
	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStorage struct {
	calls    int
	body     string
	filename string
	itemType string
	err      error
}

func (f *fakeStorage) Store(ctx context.Context, body io.Reader, size int64, filename string, itemType string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(body)
	f.body, f.filename, f.itemType = string(b), filename, itemType
	return "https://cdn.example.com/" + itemType + "-1-abcdefgh" + filepath.Ext(filename), nil
}

type mockItemRepo struct {
	domain.VaultItemRepository
	inserted []*domain.VaultItem
	err      error
}

func (m *mockItemRepo) Insert(ctx context.Context, item *domain.VaultItem) (*domain.VaultItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	saved := *item
	saved.ID = "generated-id"
	saved.CreatedAt = time.UnixMilli(1700000000000).UTC()
	m.inserted = append(m.inserted, &saved)
	return &saved, nil
}

func newTestIngest(st storage.Storager, repo domain.VaultItemRepository) (IngestService, *IngestMetrics) {
	metrics := NewIngestMetrics(prometheus.NewRegistry())
	return NewIngestService(NewIngestValidator(), st, repo, metrics, zap.NewNop()), metrics
}

func TestIngest_Note(t *testing.T) {
	st := &fakeStorage{}
	repo := &mockItemRepo{}
	svc, metrics := newTestIngest(st, repo)

	item, err := svc.Ingest(context.Background(), &IngestRequest{
		Owner: domain.Owned("u1"),
		Type:  "note",
		Text:  strPtr("buy milk"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, st.calls, "text types never touch storage")
	assert.Equal(t, domain.ItemTypeNote, item.Type)
	assert.Equal(t, domain.CategoryNotes, item.Category)
	assert.Equal(t, "buy milk", *item.Text)
	assert.Nil(t, item.ContentURL)
	assert.Nil(t, item.Title)
	assert.Nil(t, item.Tags)
	assert.Nil(t, item.Summary)
	assert.Equal(t, domain.Owned("u1"), item.Owner)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.total.WithLabelValues("note", ResultOK)))
}

func TestIngest_LinkWithTitle(t *testing.T) {
	repo := &mockItemRepo{}
	svc, _ := newTestIngest(&fakeStorage{}, repo)

	item, err := svc.Ingest(context.Background(), &IngestRequest{
		Type:  "link",
		Text:  strPtr("https://go.dev"),
		Title: strPtr("Go"),
		File:  filePart("ignored.png", "image/png", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLinks, item.Category)
	assert.Equal(t, "Go", *item.Title)
	assert.True(t, item.Owner.IsPublic())
}

func TestIngest_ImageUsesFilenameAsTitle(t *testing.T) {
	st := &fakeStorage{}
	repo := &mockItemRepo{}
	svc, metrics := newTestIngest(st, repo)

	item, err := svc.Ingest(context.Background(), &IngestRequest{
		Type: "image",
		File: &FilePart{Filename: "cat.png", MimeType: "image/png", Size: 3, Body: strings.NewReader("png")},
		Text: strPtr("dropped"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, st.calls)
	assert.Equal(t, "png", st.body)
	assert.Equal(t, "image", st.itemType)
	assert.Equal(t, "https://cdn.example.com/image-1-abcdefgh.png", *item.ContentURL)
	assert.Nil(t, item.Text)
	assert.Equal(t, "cat.png", *item.Title)
	assert.Equal(t, domain.CategoryMedia, item.Category)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.bytes.WithLabelValues("image")))
}

func TestIngest_EmptyTitleFallsBack(t *testing.T) {
	svc, _ := newTestIngest(&fakeStorage{}, &mockItemRepo{})

	item, err := svc.Ingest(context.Background(), &IngestRequest{
		Type:  "voice",
		Title: strPtr(""),
		File:  filePart("memo.ogg", "audio/ogg", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "memo.ogg", *item.Title)
}

func TestIngest_ValidationFailureTouchesNothing(t *testing.T) {
	st := &fakeStorage{}
	repo := &mockItemRepo{}
	svc, metrics := newTestIngest(st, repo)

	_, err := svc.Ingest(context.Background(), &IngestRequest{
		Type: "image",
		File: filePart("big.png", "image/png", 11*mib),
	})
	assert.True(t, errors.Is(err, code.ErrorFileTooLarge))
	assert.Equal(t, 0, st.calls)
	assert.Empty(t, repo.inserted)

	_, err = svc.Ingest(context.Background(), &IngestRequest{Type: "gif"})
	assert.True(t, errors.Is(err, code.ErrorInvalidItemType))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.total.WithLabelValues("unknown", ResultInvalid)))
}

func TestIngest_StorageFailureSkipsIndex(t *testing.T) {
	st := &fakeStorage{err: errors.Join(storage.ErrStorageFailure, errors.New("bucket unreachable"))}
	repo := &mockItemRepo{}
	svc, metrics := newTestIngest(st, repo)

	_, err := svc.Ingest(context.Background(), &IngestRequest{
		Type: "video",
		File: filePart("clip.mp4", "video/mp4", 10),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorUploadFileFailed))
	assert.True(t, errors.Is(err, storage.ErrStorageFailure))
	assert.Empty(t, repo.inserted)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.total.WithLabelValues("video", ResultStorageError)))
}

func TestIngest_IndexFailureLogsOrphan(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	st := &fakeStorage{}
	repo := &mockItemRepo{err: errors.New("disk full")}
	svc := NewIngestService(NewIngestValidator(), st, repo, NewIngestMetrics(prometheus.NewRegistry()), zap.New(core))

	_, err := svc.Ingest(context.Background(), &IngestRequest{
		Type: "image",
		File: filePart("a.gif", "image/gif", 1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorDBQuery))
	assert.Equal(t, 1, st.calls)

	entries := logs.FilterMessage("ingest index insert failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://cdn.example.com/image-1-abcdefgh.gif", entries[0].ContextMap()["url"])
}

// 端到端：本地存储 + sqlite 索引
func TestIngest_EndToEndLocal(t *testing.T) {
	dir := t.TempDir()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{Type: "sqlite", Path: ":memory:", AutoMigrate: true}, nil)
	require.NoError(t, err)
	repo := dao.NewVaultItemRepository(db)

	st, err := storage.NewClient(&storage.Config{Type: storage.LOCAL, SavePath: dir, URLPrefix: "/uploads"}, nil)
	require.NoError(t, err)

	svc, _ := newTestIngest(st, repo)
	items := NewVaultItemService(repo, nil, nil)
	ctx := context.Background()

	img, err := svc.Ingest(ctx, &IngestRequest{
		Owner: domain.Owned("A"),
		Type:  "image",
		File:  &FilePart{Filename: "Cat.JPG", MimeType: "image/jpeg", Size: 4, Body: strings.NewReader("jpeg")},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/image-\d+-[a-z0-9]{8}\.jpg$`, *img.ContentURL)
	assert.FileExists(t, filepath.Join(dir, strings.TrimPrefix(*img.ContentURL, "/uploads/")))

	note, err := svc.Ingest(ctx, &IngestRequest{Type: "note", Text: strPtr("public note")})
	require.NoError(t, err)

	listA, err := items.List(ctx, domain.Owned("A"), domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listA, 2)

	listPublic, err := items.List(ctx, domain.Public, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listPublic, 1)
	assert.Equal(t, note.ID, listPublic[0].ID)

	require.NoError(t, items.Delete(ctx, domain.Owned("A"), img.ID))
	err = items.Delete(ctx, domain.Owned("A"), img.ID)
	assert.True(t, errors.Is(err, code.ErrorVaultItemNotFound))
}
