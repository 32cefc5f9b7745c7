package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/yuin/goldmark"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/filex"
)

// PageTarget uploads local HTML or Markdown files as course pages.
type PageTarget struct {
	session  canvas.Session
	courseID int64
	slugs    map[string]string
}

func NewPageTarget(s canvas.Session, courseID int64) *PageTarget {
	return &PageTarget{session: s, courseID: courseID, slugs: map[string]string{}}
}

func (t *PageTarget) Kind() models.Kind     { return models.KindPage }
func (t *PageTarget) ChecksConflicts() bool { return true }

// ExistingTitles loads the course's page titles and remembers their slugs
// for later overwrites.
func (t *PageTarget) ExistingTitles(ctx context.Context) (*models.TitleSet, error) {
	set := models.NewTitleSet()
	for p, err := range t.session.Pages(ctx, t.courseID) {
		if err != nil {
			return nil, err
		}
		set.Add(p.Title)
		t.slugs[p.Title] = p.URL
	}
	return set, nil
}

func (t *PageTarget) Create(ctx context.Context, c models.UploadCandidate) error {
	body, err := PageBody(c.Path)
	if err != nil {
		return err
	}
	page, err := t.session.CreatePage(ctx, t.courseID, models.PageInput{Title: c.Title, Body: &body})
	if err != nil {
		return err
	}
	t.slugs[c.Title] = page.URL
	return nil
}

// Overwrite replaces the body of the page that carries c.Title.
func (t *PageTarget) Overwrite(ctx context.Context, c models.UploadCandidate) error {
	slug, ok := t.slugs[c.Title]
	if !ok {
		return fmt.Errorf("page %q: %w", c.Title, canvas.ErrNotFound)
	}
	body, err := PageBody(c.Path)
	if err != nil {
		return err
	}
	_, err = t.session.UpdatePage(ctx, t.courseID, slug, models.PageInput{Title: c.Title, Body: &body})
	return err
}

// Diff compares the remote page's latest revision with the local body.
func (t *PageTarget) Diff(ctx context.Context, c models.UploadCandidate) (string, error) {
	slug, ok := t.slugs[c.Title]
	if !ok {
		return "", fmt.Errorf("page %q: %w", c.Title, canvas.ErrNotFound)
	}
	rev, err := t.session.LatestRevision(ctx, t.courseID, slug)
	if err != nil {
		return "", err
	}
	body, err := PageBody(c.Path)
	if err != nil {
		return "", err
	}
	return TextDiff(rev.Body, body), nil
}

// FileTarget uploads local files into course files. The instance renames
// duplicates, so no title is ever in conflict.
type FileTarget struct {
	session  canvas.Session
	courseID int64
}

func NewFileTarget(s canvas.Session, courseID int64) *FileTarget {
	return &FileTarget{session: s, courseID: courseID}
}

func (t *FileTarget) Kind() models.Kind     { return models.KindFile }
func (t *FileTarget) ChecksConflicts() bool { return false }

func (t *FileTarget) ExistingTitles(context.Context) (*models.TitleSet, error) {
	return models.NewTitleSet(), nil
}

func (t *FileTarget) Create(ctx context.Context, c models.UploadCandidate) error {
	_, err := t.session.UploadFile(ctx, t.courseID, c.Path)
	return err
}

func (t *FileTarget) Overwrite(context.Context, models.UploadCandidate) error {
	return ErrNoConflictCheck
}

func (t *FileTarget) Diff(context.Context, models.UploadCandidate) (string, error) {
	return "", ErrNoConflictCheck
}

// PageBody reads a local file as a page body. Markdown is rendered to HTML;
// everything else is sent as is.
func PageBody(path string) (string, error) {
	text, err := filex.ReadText(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(text), &buf); err != nil {
			return "", fmt.Errorf("render %s: %w", path, err)
		}
		return buf.String(), nil
	}
	return text, nil
}

// TextDiff renders a colored character diff from remote to local.
func TextDiff(remote, local string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(remote, local, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
