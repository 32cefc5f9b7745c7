package cli

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/common"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/task"
)

// getToken is an indirection used to facilitate testing.
var getToken = GetToken

const (
	msgInvalidToken = "Invalid or missing token"
	msgInvalidURL   = "Invalid Canvas URL. Check canvas_url in the config file."
)

// Login prompts for an access token, opens a session and loads the enrolled
// courses sorted by id.
//
// An invalid token leaves the app logged out so the user can try again. A
// user without enrolments stays logged in and is pointed to courseid.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	s, err := a.newSession(a.config.CanvasURL, string(token))
	if err != nil {
		a.reportLoginError(ctx, err)
		return err
	}

	courses, err := task.Run(ctx, a.out, "Logging in", func(ctx context.Context) ([]models.Course, error) {
		return canvas.Collect(s.EnrolledCourses(ctx))
	})
	if err != nil {
		a.reportLoginError(ctx, err)
		return err
	}

	slices.SortStableFunc(courses, func(x, y models.Course) int { return cmp.Compare(x.ID, y.ID) })

	a.session = s
	a.courses = courses
	a.course = nil
	a.shown, a.items = nil, nil
	a.log.Info(ctx, "logged in", "courses", len(courses))

	if len(courses) == 0 {
		a.println("No enrolled courses were found. Use 'courseid <id>' to enter a course ID.")
		return nil
	}
	return a.Courses(ctx)
}

func (a *App) reportLoginError(ctx context.Context, err error) {
	a.log.Warn(ctx, "login failed", "error", err)
	switch {
	case errors.Is(err, canvas.ErrInvalidAccessToken):
		a.println(msgInvalidToken)
	case errors.Is(err, canvas.ErrInvalidURL), errors.Is(err, canvas.ErrNotFound), errors.Is(err, canvas.ErrUnavailable):
		a.println(msgInvalidURL)
	default:
		a.println("Login failed:", err)
	}
}

// Logout forgets the session, the token it holds and the selected course.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	a.courses = nil
	a.course = nil
	a.shown, a.items = nil, nil
	a.log.Info(ctx, "logged out")
	a.println("Logged out.")
	return nil
}

// Status prints the instance, the selected course and the sort order.
func (a *App) Status(ctx context.Context) error {
	a.println("Canvas:", a.config.CanvasURL)
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}
	if a.course != nil {
		a.println("Course:", a.course.Label())
	} else {
		a.println("Course: none selected")
	}
	a.println("Sort:", a.sortMode.Label())
	return nil
}
