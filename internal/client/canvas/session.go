package canvas

import (
	"context"
	"io"
	"iter"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

// Session is the remote capability set the uploader is built on.
type Session interface {
	GetCourse(ctx context.Context, courseID int64) (models.Course, error)
	EnrolledCourses(ctx context.Context) iter.Seq2[models.Course, error]

	Pages(ctx context.Context, courseID int64) iter.Seq2[models.Page, error]
	LatestRevision(ctx context.Context, courseID int64, pageURL string) (models.Revision, error)
	CreatePage(ctx context.Context, courseID int64, in models.PageInput) (models.Page, error)
	UpdatePage(ctx context.Context, courseID int64, pageURL string, in models.PageInput) (models.Page, error)
	DeletePage(ctx context.Context, courseID int64, pageURL string) error

	Files(ctx context.Context, courseID int64) iter.Seq2[models.File, error]
	FileByName(ctx context.Context, courseID int64, displayName string) (models.File, error)
	UploadFile(ctx context.Context, courseID int64, path string) (models.File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	DownloadFile(ctx context.Context, f models.File, w io.Writer) (int64, error)

	CourseURL(courseID int64) string
	PageURL(courseID int64, pageURL string) string
	FileURL(courseID int64, fileID int64) string
}

// Collect drains a lazy listing. It stops at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var _ Session = (*Client)(nil)
