package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/config"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/services"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/common"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/logging"
)

// SessionFactory opens a session for an instance URL and access token.
type SessionFactory func(baseURL, token string) (canvas.Session, error)

func defaultSessionFactory(baseURL, token string) (canvas.Session, error) {
	return canvas.New(baseURL, token)
}

// App is the REPL state: the open session, the enrolled courses, the
// selected course and the listing currently shown.
type App struct {
	config     *config.Config
	log        logging.Logger
	newSession SessionFactory

	session  canvas.Session
	courses  []models.Course
	course   *models.Course
	sortMode models.SortMode
	shown    services.ContentManager
	items    []models.Item

	reader *bufio.Reader
	out    io.Writer
}

type Option func(*App)

// WithIO replaces stdin/stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(r)
		a.out = w
	}
}

// WithSessionFactory replaces how sessions are opened on login.
func WithSessionFactory(f SessionFactory) Option {
	return func(a *App) { a.newSession = f }
}

func NewApp(c *config.Config, log logging.Logger, opts ...Option) *App {
	a := &App{
		config:     c,
		log:        log,
		newSession: defaultSessionFactory,
		sortMode:   models.SortAlpha,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run prints the banner and serves commands until exit, end of input or
// ctx cancellation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "%s (type 'help' for commands)\n", a.config.WindowTitle)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) hasCourse() bool {
	return a.course != nil
}

func (a *App) getStatus() string {
	switch {
	case a.course != nil:
		return fmt.Sprintf("(%s)", a.course.Label())
	case a.session != nil:
		return "(no course)"
	}
	return "(logged out)"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) prompter() services.Prompter {
	return &replPrompter{reader: a.reader, out: a.out}
}

// require reports whether a session (and a course, when course is set) is
// available, printing a hint when not.
func (a *App) require(course bool) error {
	if a.session == nil {
		a.println(msgLoginFirst)
		return common.ErrNoSession
	}
	if course && a.course == nil {
		a.println(msgCourseFirst)
		return common.ErrNoCourse
	}
	return nil
}
