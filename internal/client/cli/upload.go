package cli

import (
	"context"
	"flag"
	"io"
	"path/filepath"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/services"
)

// UploadPages uploads HTML or Markdown files as pages of the selected
// course. -f overwrites pages with the same title without asking.
func (a *App) UploadPages(ctx context.Context, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	fs := flag.NewFlagSet("uploadpages", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	force := fs.Bool("f", false, "overwrite existing pages without asking")
	if err := fs.Parse(args); err != nil {
		a.println("Usage: uploadpages [-f] [paths]")
		return err
	}

	paths, err := a.uploadPaths(fs.Args(), "Enter page files (.html, .md), one per line")
	if err != nil || len(paths) == 0 {
		return err
	}

	target := services.NewPageTarget(a.session, a.course.ID)
	return a.upload(ctx, target, paths, *force)
}

// UploadFiles uploads files into the selected course. Duplicate names are
// renamed by Canvas.
func (a *App) UploadFiles(ctx context.Context, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	paths, err := a.uploadPaths(args, "Enter files, one per line")
	if err != nil || len(paths) == 0 {
		return err
	}

	target := services.NewFileTarget(a.session, a.course.ID)
	return a.upload(ctx, target, paths, false)
}

func (a *App) upload(ctx context.Context, target services.Target, paths []string, force bool) error {
	svc := services.NewUploadService(a.prompter(), a.out, a.log)
	report, err := svc.UploadBatch(ctx, target, paths, force)

	kind := kindLabel(target.Kind())
	for _, p := range report.TooLarge {
		a.printf("%s too large to upload: %s\n", target.Kind(), p)
	}
	for _, t := range report.Unauthorized {
		a.printf("User is not authorized to overwrite %s: %q\n", target.Kind(), t)
	}
	if err != nil {
		a.reportError(ctx, "upload "+kind+"s", err)
		return err
	}

	a.printf("Upload Complete: %d created, %d overwritten, %d skipped\n",
		len(report.Created), len(report.Overwritten), len(report.Skipped)+len(report.TooLarge)+len(report.Unauthorized))

	if a.shown != nil && a.shown.Kind() == target.Kind() {
		return a.refresh(ctx)
	}
	return nil
}

// uploadPaths takes paths from args or, when there are none, from prompted
// lines. Glob patterns are expanded; a pattern without matches is kept so
// the upload reports the missing file.
func (a *App) uploadPaths(args []string, prompt string) ([]string, error) {
	if len(args) == 0 {
		lines, err := GetLines(a.reader, prompt, a.out)
		if err != nil {
			return nil, err
		}
		args = lines
	}

	var paths []string
	for _, arg := range args {
		if matches, err := filepath.Glob(arg); err == nil && len(matches) > 0 {
			paths = append(paths, matches...)
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		a.println("No files selected.")
	}
	return paths, nil
}

var _ services.Prompter = (*replPrompter)(nil)

func kindLabel(k models.Kind) string {
	return strings.ToLower(string(k))
}
