package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasCourse() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error

	Courses(ctx context.Context) error
	SelectCourse(ctx context.Context, args []string) error
	SelectCourseID(ctx context.Context, args []string) error

	UploadPages(ctx context.Context, args []string) error
	UploadFiles(ctx context.Context, args []string) error

	ListPages(ctx context.Context) error
	ListFiles(ctx context.Context) error
	Sort(ctx context.Context, args []string) error
	DeletePages(ctx context.Context, args []string) error
	DeleteFiles(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error

	Search(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpNoCourse  = "Available commands: courses, course <n>, courseid <id>, search -all <term>, status, logout, exit"
	helpCourse    = "Available commands: courses, course <n>, courseid <id>, uploadpages [-f] [paths], uploadfiles [paths], " +
		"pages, files, sort recent|alpha, deletepages, deletefiles, publish, open course|page|file, download, " +
		"search [-all] [-word] [-case] <term>, status, logout, exit"

	msgLoginFirst  = "Please login first."
	msgCourseFirst = "Please select a course first: course <n> or courseid <id>."
)

// runREPL starts a simple read–eval–print loop for the uploader.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens. Unknown commands are
// reported back to the user. The loop exits on EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Commands that need a session or a selected course print a hint instead of
// running. Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("ccu %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		needSession := func() bool {
			if !a.isLoggedIn() {
				printlnFn(msgLoginFirst)
				return false
			}
			return true
		}
		needCourse := func() bool {
			if !needSession() {
				return false
			}
			if !a.hasCourse() {
				printlnFn(msgCourseFirst)
				return false
			}
			return true
		}

		switch cmd {
		case "help":
			switch {
			case a.hasCourse():
				printlnFn(helpCourse)
			case a.isLoggedIn():
				printlnFn(helpNoCourse)
			default:
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			if needSession() {
				_ = a.Logout(ctx)
			}

		case "status":
			_ = a.Status(ctx)

		case "courses":
			if needSession() {
				_ = a.Courses(ctx)
			}

		case "course":
			if needSession() {
				_ = a.SelectCourse(ctx, args)
			}

		case "courseid":
			if needSession() {
				_ = a.SelectCourseID(ctx, args)
			}

		case "uploadpages":
			if needCourse() {
				_ = a.UploadPages(ctx, args)
			}

		case "uploadfiles":
			if needCourse() {
				_ = a.UploadFiles(ctx, args)
			}

		case "pages":
			if needCourse() {
				_ = a.ListPages(ctx)
			}

		case "files":
			if needCourse() {
				_ = a.ListFiles(ctx)
			}

		case "sort":
			_ = a.Sort(ctx, args)

		case "deletepages":
			if needCourse() {
				_ = a.DeletePages(ctx, args)
			}

		case "deletefiles":
			if needCourse() {
				_ = a.DeleteFiles(ctx, args)
			}

		case "publish":
			if needCourse() {
				_ = a.Publish(ctx, args)
			}

		case "open":
			if needCourse() {
				_ = a.Open(ctx, args)
			}

		case "download":
			if needCourse() {
				_ = a.Download(ctx, args)
			}

		case "search":
			if searchesAll(args) {
				if needSession() {
					_ = a.Search(ctx, args)
				}
			} else if needCourse() {
				_ = a.Search(ctx, args)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func searchesAll(args []string) bool {
	for _, a := range args {
		if a == "-all" || a == "--all" {
			return true
		}
	}
	return false
}
