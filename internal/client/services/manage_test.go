package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

func keys(items []models.Item) []string {
	var out []string
	for _, i := range items {
		out = append(out, i.Key)
	}
	return out
}

func TestSortItems_AlphaStable(t *testing.T) {
	items := []models.Item{
		{Key: "b", Display: "b"},
		{Key: "a", Display: models.PublishedPrefix + "a", UpdatedAt: time.Unix(1, 0)},
		{Key: "a", Display: "a", UpdatedAt: time.Unix(2, 0)},
	}
	SortItems(items, models.SortAlpha)

	assert.Equal(t, []string{"a", "a", "b"}, keys(items))
	assert.Equal(t, time.Unix(1, 0), items[0].UpdatedAt, "ties keep prior order")
}

func TestSortItems_RecentDescendingStable(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.Item{
		{Key: "old", UpdatedAt: t0},
		{Key: "tie1", UpdatedAt: t0.Add(time.Hour)},
		{Key: "tie2", UpdatedAt: t0.Add(time.Hour)},
	}
	SortItems(items, models.SortRecent)

	assert.Equal(t, []string{"tie1", "tie2", "old"}, keys(items))
}

func TestPageManager_ListAndPublish(t *testing.T) {
	fs := newFakeSession()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fs.pages[course] = []models.Page{
		{URL: "intro", Published: true, UpdatedAt: ts},
		{URL: "draft"},
	}
	m := NewPageManager(fs)

	items, err := m.List(context.Background(), course)
	require.NoError(t, err)
	want := []models.Item{
		{Kind: models.KindPage, Key: "intro", Display: "[published] intro", UpdatedAt: ts, Published: true},
		{Kind: models.KindPage, Key: "draft", Display: "draft"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	r, err := PublishItems(context.Background(), m, course, []string{"draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"draft"}, r.Done)
	require.NotNil(t, fs.updated["draft"].Published)
	assert.True(t, *fs.updated["draft"].Published)

	u, err := m.URL(context.Background(), course, items[0])
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.test/courses/10/pages/intro", u)
}

func TestDeleteItems_UnauthorizedContinues(t *testing.T) {
	fs := newFakeSession()
	fs.deleteErrs = map[string]error{"locked": canvas.ErrUnauthorized}
	m := NewPageManager(fs)

	r, err := DeleteItems(context.Background(), m, course, []string{"locked", "free"})
	require.NoError(t, err)
	assert.Equal(t, []string{"locked"}, r.Unauthorized)
	assert.Equal(t, []string{"free"}, r.Done)
	assert.Equal(t, []string{"free"}, fs.deleted)
}

func TestDeleteItems_OtherErrorStops(t *testing.T) {
	fs := newFakeSession()
	fs.deleteErrs = map[string]error{"gone": canvas.ErrNotFound}
	m := NewPageManager(fs)

	r, err := DeleteItems(context.Background(), m, course, []string{"gone", "free"})
	assert.ErrorIs(t, err, canvas.ErrNotFound)
	assert.Empty(t, r.Done)
	assert.Empty(t, fs.deleted)
}

func TestFileManager_DeleteByDisplayName(t *testing.T) {
	fs := newFakeSession()
	fs.files[course] = []models.File{{ID: 5, DisplayName: "a.pdf"}}
	m := NewFileManager(fs, t.TempDir())

	r, err := DeleteItems(context.Background(), m, course, []string{"a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, r.Done)
	assert.Equal(t, []string{"5"}, fs.deleted)

	_, err = DeleteItems(context.Background(), m, course, []string{"missing.pdf"})
	assert.ErrorIs(t, err, canvas.ErrNotFound)
}

func TestFileManager_ListUsesModifiedAt(t *testing.T) {
	fs := newFakeSession()
	mod := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fs.files[course] = []models.File{{ID: 5, DisplayName: "a.pdf", UpdatedAt: mod.Add(time.Hour), ModifiedAt: mod}}

	items, err := NewFileManager(fs, "").List(context.Background(), course)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mod, items[0].UpdatedAt)
	assert.Equal(t, models.KindFile, items[0].Kind)
}

func TestFileManager_DownloadAndURL(t *testing.T) {
	fs := newFakeSession()
	fs.files[course] = []models.File{{ID: 5, DisplayName: "a.pdf"}}
	dir := filepath.Join(t.TempDir(), "download")
	m := NewFileManager(fs, dir)

	path, err := m.Download(context.Background(), course, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content of a.pdf", string(b))

	u, err := m.URL(context.Background(), course, models.Item{Key: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.test/courses/10/files/5", u)
}

func TestManagersSatisfyCapabilities(t *testing.T) {
	var pm ContentManager = NewPageManager(nil)
	var fm ContentManager = NewFileManager(nil, "")

	_, ok := pm.(Publisher)
	assert.True(t, ok)
	_, ok = pm.(Downloader)
	assert.False(t, ok)
	_, ok = fm.(Downloader)
	assert.True(t, ok)
	_, ok = fm.(Publisher)
	assert.False(t, ok)
}
