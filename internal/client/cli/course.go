package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/common"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/task"
)

// Courses prints the enrolled courses with the index used by 'course'.
func (a *App) Courses(ctx context.Context) error {
	if len(a.courses) == 0 {
		a.println("No enrolled courses. Use 'courseid <id>' to enter a course ID.")
		return nil
	}
	for i, c := range a.courses {
		a.printf("%3d  %s\n", i+1, c.Label())
	}
	return nil
}

// SelectCourse selects an enrolled course by its 1-based index.
func (a *App) SelectCourse(ctx context.Context, args []string) error {
	if err := a.require(false); err != nil {
		return err
	}
	if len(args) == 0 {
		s, err := GetSimpleText(a.reader, "Enter course number", a.out)
		if err != nil {
			return err
		}
		args = []string{s}
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.courses) {
		a.println("Invalid course number:", args[0])
		return common.ErrNoCourse
	}

	c := a.courses[n-1]
	return a.setCourse(ctx, c)
}

// SelectCourseID selects a course by id, checking that it can be read.
func (a *App) SelectCourseID(ctx context.Context, args []string) error {
	if err := a.require(false); err != nil {
		return err
	}
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := GetSimpleText(a.reader, "Enter course ID", a.out)
		if err != nil {
			return err
		}
		raw = s
	}

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		a.println("Invalid or missing course ID")
		return common.ErrInvalidCourseID
	}

	c, err := task.Run(ctx, a.out, "Loading course", func(ctx context.Context) (models.Course, error) {
		return a.session.GetCourse(ctx, id)
	})
	if err != nil {
		switch {
		case errors.Is(err, canvas.ErrNotFound):
			a.printf("Can not access course with ID %d\n", id)
		case errors.Is(err, canvas.ErrUnauthorized):
			a.printf("User is not authorized to access course with ID %d\n", id)
		default:
			a.reportError(ctx, "load course", err)
		}
		return err
	}

	return a.setCourse(ctx, c)
}

func (a *App) setCourse(ctx context.Context, c models.Course) error {
	a.course = &c
	a.log.Info(ctx, "course selected", "course_id", c.ID)
	a.println("Selected", c.Label())

	if a.shown != nil {
		return a.refresh(ctx)
	}
	return nil
}

// reportError prints a single message for a failed remote operation.
func (a *App) reportError(ctx context.Context, op string, err error) {
	a.log.Error(ctx, op+" failed", "error", err)
	switch {
	case errors.Is(err, context.Canceled):
		a.println("Cancelled.")
	case errors.Is(err, canvas.ErrInvalidAccessToken):
		a.println(msgInvalidToken + ". Please login again.")
	case errors.Is(err, canvas.ErrUnavailable):
		a.println("Canvas is unavailable. Try again later.")
	default:
		a.printf("Could not %s: %v\n", op, err)
	}
}
