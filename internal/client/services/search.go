package services

import (
	"context"
	"iter"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/logging"
)

type SearchService interface {
	Search(ctx context.Context, q models.SearchQuery, courseID int64) (iter.Seq2[models.Page, error], error)
}

type searchService struct {
	session canvas.Session
	log     logging.Logger
}

func NewSearchService(s canvas.Session, log logging.Logger) SearchService {
	return &searchService{session: s, log: log}
}

// Search returns the pages whose latest revision matches q. Pages are read
// one at a time as the sequence is consumed: courses in enrollment order
// (or only courseID for the selected scope), pages in listing order.
//
// Pages with an empty body never match. The first remote error is yielded
// and ends the sequence.
func (s *searchService) Search(ctx context.Context, q models.SearchQuery, courseID int64) (iter.Seq2[models.Page, error], error) {
	if strings.TrimSpace(q.Term) == "" {
		return nil, ErrEmptySearchTerm
	}
	re, err := q.Pattern()
	if err != nil {
		return nil, err
	}

	return func(yield func(models.Page, error) bool) {
		searchCourse := func(id int64) bool {
			for p, err := range s.session.Pages(ctx, id) {
				if err != nil {
					yield(models.Page{}, err)
					return false
				}

				rev, err := s.session.LatestRevision(ctx, id, p.URL)
				if err != nil {
					yield(models.Page{}, err)
					return false
				}
				if rev.Body == "" || !re.MatchString(rev.Body) {
					continue
				}

				if p.HTMLURL == "" {
					p.HTMLURL = s.session.PageURL(id, p.URL)
				}
				p.Body = rev.Body
				s.log.Debug(ctx, "search match", "course_id", id, "page", p.URL)
				if !yield(p, nil) {
					return false
				}
			}
			return true
		}

		if q.CourseScope == models.CourseSelected {
			searchCourse(courseID)
			return
		}

		for c, err := range s.session.EnrolledCourses(ctx) {
			if err != nil {
				yield(models.Page{}, err)
				return
			}
			if !searchCourse(c.ID) {
				return
			}
		}
	}, nil
}
