package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/filex"
)

// DownloadDir is the working-directory subfolder downloads are saved into.
const DownloadDir = "download"

// ContentManager lists and removes one kind of course content.
type ContentManager interface {
	Kind() models.Kind
	List(ctx context.Context, courseID int64) ([]models.Item, error)
	Delete(ctx context.Context, courseID int64, key string) error
	URL(ctx context.Context, courseID int64, item models.Item) (string, error)
}

// Publisher is implemented by managers whose content can be published.
type Publisher interface {
	Publish(ctx context.Context, courseID int64, key string) error
}

// Downloader is implemented by managers whose content can be saved locally.
type Downloader interface {
	Download(ctx context.Context, courseID int64, key string) (string, error)
}

type PageManager struct {
	session canvas.Session
}

func NewPageManager(s canvas.Session) *PageManager {
	return &PageManager{session: s}
}

func (m *PageManager) Kind() models.Kind { return models.KindPage }

func (m *PageManager) List(ctx context.Context, courseID int64) ([]models.Item, error) {
	var items []models.Item
	for p, err := range m.session.Pages(ctx, courseID) {
		if err != nil {
			return nil, err
		}
		items = append(items, models.PageItem(p))
	}
	return items, nil
}

func (m *PageManager) Delete(ctx context.Context, courseID int64, key string) error {
	return m.session.DeletePage(ctx, courseID, key)
}

func (m *PageManager) URL(_ context.Context, courseID int64, item models.Item) (string, error) {
	return m.session.PageURL(courseID, item.Key), nil
}

func (m *PageManager) Publish(ctx context.Context, courseID int64, key string) error {
	yes := true
	_, err := m.session.UpdatePage(ctx, courseID, key, models.PageInput{Published: &yes})
	return err
}

type FileManager struct {
	session canvas.Session
	dir     string
}

// NewFileManager builds a FileManager saving downloads under dir; an empty
// dir means DownloadDir in the working directory.
func NewFileManager(s canvas.Session, dir string) *FileManager {
	return &FileManager{session: s, dir: dir}
}

func (m *FileManager) Kind() models.Kind { return models.KindFile }

func (m *FileManager) List(ctx context.Context, courseID int64) ([]models.Item, error) {
	var items []models.Item
	for f, err := range m.session.Files(ctx, courseID) {
		if err != nil {
			return nil, err
		}
		items = append(items, models.FileItem(f))
	}
	return items, nil
}

// Delete removes the file with the given display name.
func (m *FileManager) Delete(ctx context.Context, courseID int64, key string) error {
	f, err := m.session.FileByName(ctx, courseID, key)
	if err != nil {
		return err
	}
	return m.session.DeleteFile(ctx, f.ID)
}

// URL needs the file id, which a listing item does not carry, so it is
// resolved remotely by display name.
func (m *FileManager) URL(ctx context.Context, courseID int64, item models.Item) (string, error) {
	f, err := m.session.FileByName(ctx, courseID, item.Key)
	if err != nil {
		return "", err
	}
	return m.session.FileURL(courseID, f.ID), nil
}

// Download saves the file into the download folder and returns its path.
func (m *FileManager) Download(ctx context.Context, courseID int64, key string) (string, error) {
	f, err := m.session.FileByName(ctx, courseID, key)
	if err != nil {
		return "", err
	}

	dir := m.dir
	if dir == "" {
		if dir, err = filex.EnsureSubdDir(DownloadDir); err != nil {
			return "", err
		}
	} else if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.Base(f.DisplayName))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := m.session.DownloadFile(ctx, f, out); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("download %q: %w", key, err)
	}
	return path, out.Close()
}

// SortItems orders items in place. Alphabetical is ascending by key, recent
// is newest first. Equal keys keep their current order.
func SortItems(items []models.Item, mode models.SortMode) {
	if mode == models.SortAlpha {
		slices.SortStableFunc(items, func(a, b models.Item) int {
			switch {
			case a.AlphaKey() < b.AlphaKey():
				return -1
			case a.AlphaKey() > b.AlphaKey():
				return 1
			}
			return 0
		})
		return
	}
	slices.SortStableFunc(items, func(a, b models.Item) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

// ItemReport is the outcome of a per-item batch such as delete or publish.
type ItemReport struct {
	Done         []string
	Unauthorized []string
}

// DeleteItems removes keys one by one. An item the user may not remove is
// recorded and skipped; any other error stops the batch.
func DeleteItems(ctx context.Context, m ContentManager, courseID int64, keys []string) (ItemReport, error) {
	return eachItem(keys, func(key string) error { return m.Delete(ctx, courseID, key) })
}

// PublishItems publishes keys one by one, like DeleteItems.
func PublishItems(ctx context.Context, p Publisher, courseID int64, keys []string) (ItemReport, error) {
	return eachItem(keys, func(key string) error { return p.Publish(ctx, courseID, key) })
}

func eachItem(keys []string, fn func(key string) error) (ItemReport, error) {
	var r ItemReport
	for _, k := range keys {
		err := fn(k)
		switch {
		case err == nil:
			r.Done = append(r.Done, k)
		case errors.Is(err, canvas.ErrUnauthorized):
			r.Unauthorized = append(r.Unauthorized, k)
		default:
			return r, fmt.Errorf("%s: %w", k, err)
		}
	}
	return r, nil
}
