package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/services"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/task"
)

// Search looks for a term in page bodies.
//
//	-all    search every enrolled course instead of the selected one
//	-word   match whole words only
//	-case   match case
func (a *App) Search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	all := fs.Bool("all", false, "search all enrolled courses")
	word := fs.Bool("word", false, "whole words only")
	matchCase := fs.Bool("case", false, "match case")
	if err := fs.Parse(args); err != nil {
		a.println("Usage: search [-all] [-word] [-case] <term>")
		return err
	}

	q := models.SearchQuery{Term: strings.Join(fs.Args(), " ")}
	if *all {
		q.CourseScope = models.CourseEnrolled
	}
	if *word {
		q.WordScope = models.WordFull
	}
	if *matchCase {
		q.CaseScope = models.CaseMatch
	}

	if err := a.require(!*all); err != nil {
		return err
	}
	var courseID int64
	if a.course != nil {
		courseID = a.course.ID
	}

	svc := services.NewSearchService(a.session, a.log)
	seq, err := svc.Search(ctx, q, courseID)
	if err != nil {
		if errors.Is(err, services.ErrEmptySearchTerm) {
			a.println("Please enter a search term.")
		} else {
			a.reportError(ctx, "search", err)
		}
		return err
	}

	pages, err := task.Run(ctx, a.out, "Searching", func(ctx context.Context) ([]models.Page, error) {
		return canvas.Collect(seq)
	})
	if err != nil {
		a.reportError(ctx, "search", err)
		return err
	}

	if len(pages) == 0 {
		a.println("No Matches Found.")
		return nil
	}
	a.printf("%d Page(s) Match\n", len(pages))
	for _, p := range pages {
		a.printf("  %s  %s\n", p.Title, p.HTMLURL)
	}
	return nil
}
