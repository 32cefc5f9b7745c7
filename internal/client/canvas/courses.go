package canvas

import (
	"context"
	"fmt"
	"iter"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

// GetCourse fetches one course. A missing or inaccessible id matches
// ErrNotFound or ErrUnauthorized.
func (c *Client) GetCourse(ctx context.Context, courseID int64) (models.Course, error) {
	var course models.Course
	if err := c.get(ctx, fmt.Sprintf("/courses/%d", courseID), &course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// EnrolledCourses lists the caller's courses in the order the API returns
// them.
func (c *Client) EnrolledCourses(ctx context.Context) iter.Seq2[models.Course, error] {
	return paginate[models.Course](ctx, c, "/courses")
}
