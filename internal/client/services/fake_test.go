package services

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

// fakeSession is an in-memory canvas.Session. Methods a test does not
// expect panic through the embedded nil interface.
type fakeSession struct {
	canvas.Session

	courses []models.Course
	pages   map[int64][]models.Page
	bodies  map[string]string
	files   map[int64][]models.File

	created   []models.PageInput
	updated   map[string]models.PageInput
	deleted   []string
	uploaded  []string
	revisions int

	createErr   error
	updateErr   error
	deleteErrs  map[string]error
	uploadErrs  map[string]error
	pagesErr    error
	revisionErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:   map[int64][]models.Page{},
		bodies:  map[string]string{},
		files:   map[int64][]models.File{},
		updated: map[string]models.PageInput{},
	}
}

func seqOf[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		for _, v := range items {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (f *fakeSession) EnrolledCourses(context.Context) iter.Seq2[models.Course, error] {
	return seqOf(f.courses, nil)
}

func (f *fakeSession) Pages(_ context.Context, courseID int64) iter.Seq2[models.Page, error] {
	return seqOf(f.pages[courseID], f.pagesErr)
}

func (f *fakeSession) LatestRevision(_ context.Context, _ int64, pageURL string) (models.Revision, error) {
	f.revisions++
	if f.revisionErr != nil {
		return models.Revision{}, f.revisionErr
	}
	return models.Revision{Latest: true, Body: f.bodies[pageURL]}, nil
}

func (f *fakeSession) CreatePage(_ context.Context, _ int64, in models.PageInput) (models.Page, error) {
	if f.createErr != nil {
		return models.Page{}, f.createErr
	}
	f.created = append(f.created, in)
	return models.Page{URL: strings.ToLower(strings.ReplaceAll(in.Title, " ", "-")), Title: in.Title}, nil
}

func (f *fakeSession) UpdatePage(_ context.Context, _ int64, pageURL string, in models.PageInput) (models.Page, error) {
	if f.updateErr != nil {
		return models.Page{}, f.updateErr
	}
	f.updated[pageURL] = in
	return models.Page{URL: pageURL, Title: in.Title}, nil
}

func (f *fakeSession) DeletePage(_ context.Context, _ int64, pageURL string) error {
	if err := f.deleteErrs[pageURL]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, pageURL)
	return nil
}

func (f *fakeSession) Files(_ context.Context, courseID int64) iter.Seq2[models.File, error] {
	return seqOf(f.files[courseID], nil)
}

func (f *fakeSession) FileByName(_ context.Context, courseID int64, name string) (models.File, error) {
	for _, file := range f.files[courseID] {
		if file.DisplayName == name {
			return file, nil
		}
	}
	return models.File{}, fmt.Errorf("file %q: %w", name, canvas.ErrNotFound)
}

func (f *fakeSession) UploadFile(_ context.Context, _ int64, path string) (models.File, error) {
	if err := f.uploadErrs[path]; err != nil {
		return models.File{}, err
	}
	f.uploaded = append(f.uploaded, path)
	return models.File{DisplayName: path}, nil
}

func (f *fakeSession) DeleteFile(_ context.Context, fileID int64) error {
	f.deleted = append(f.deleted, fmt.Sprint(fileID))
	return nil
}

func (f *fakeSession) DownloadFile(_ context.Context, file models.File, w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "content of "+file.DisplayName)
	return int64(n), err
}

func (f *fakeSession) PageURL(courseID int64, pageURL string) string {
	return fmt.Sprintf("https://canvas.test/courses/%d/pages/%s", courseID, pageURL)
}

func (f *fakeSession) FileURL(courseID int64, fileID int64) string {
	return fmt.Sprintf("https://canvas.test/courses/%d/files/%d", courseID, fileID)
}

// scriptedPrompter answers conflict prompts from queues.
type scriptedPrompter struct {
	decisions []models.Decision
	titles    []string
	confirms  []bool

	asked []string
	diffs []string
}

func (p *scriptedPrompter) AskConflict(kind models.Kind, title string, canDiff bool) (models.Decision, error) {
	p.asked = append(p.asked, title)
	if len(p.decisions) == 0 {
		return models.DecisionCancel, io.EOF
	}
	d := p.decisions[0]
	p.decisions = p.decisions[1:]
	return d, nil
}

func (p *scriptedPrompter) AskTitle(kind models.Kind, current string) (string, error) {
	if len(p.titles) == 0 {
		return "", io.EOF
	}
	t := p.titles[0]
	p.titles = p.titles[1:]
	return t, nil
}

func (p *scriptedPrompter) ConfirmOverwrite(kind models.Kind, title string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, io.EOF
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func (p *scriptedPrompter) ShowDiff(title, diff string) {
	p.diffs = append(p.diffs, diff)
}
