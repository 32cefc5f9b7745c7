package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/browser"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/services"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/task"
)

// openBrowser is a test seam for browser.OpenURL.
var openBrowser = browser.OpenURL

func (a *App) pageManager() *services.PageManager {
	return services.NewPageManager(a.session)
}

func (a *App) fileManager() *services.FileManager {
	return services.NewFileManager(a.session, "")
}

// ListPages shows the pages of the selected course.
func (a *App) ListPages(ctx context.Context) error {
	if err := a.require(true); err != nil {
		return err
	}
	a.shown = a.pageManager()
	return a.refresh(ctx)
}

// ListFiles shows the files of the selected course.
func (a *App) ListFiles(ctx context.Context) error {
	if err := a.require(true); err != nil {
		return err
	}
	a.shown = a.fileManager()
	return a.refresh(ctx)
}

// refresh reloads the shown listing, sorts it and prints it.
func (a *App) refresh(ctx context.Context) error {
	if a.shown == nil || a.course == nil {
		return nil
	}
	m, courseID := a.shown, a.course.ID

	items, err := task.Run(ctx, a.out, "Loading "+kindLabel(m.Kind())+"s", func(ctx context.Context) ([]models.Item, error) {
		return m.List(ctx, courseID)
	})
	if err != nil {
		a.items = nil
		a.reportError(ctx, "list "+kindLabel(m.Kind())+"s", err)
		return err
	}

	a.items = items
	a.printItems()
	return nil
}

func (a *App) printItems() {
	services.SortItems(a.items, a.sortMode)

	kind := kindLabel(a.shown.Kind())
	a.printf("%d %s(s), %s:\n", len(a.items), kind, a.sortMode.Label())
	for _, it := range a.items {
		a.printf("  %s\n", it.Display)
	}
}

// Sort changes the listing order and re-sorts the shown listing.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Sort:", a.sortMode.Label())
		return nil
	}

	mode, err := models.ParseSortMode(args[0])
	if err != nil {
		a.println("Usage: sort recent|alpha")
		return err
	}
	a.sortMode = mode

	if a.shown != nil && a.items != nil {
		a.printItems()
	}
	return nil
}

// DeletePages deletes pages by slug after confirmation.
func (a *App) DeletePages(ctx context.Context, args []string) error {
	return a.deleteItems(ctx, a.pageManager(), args)
}

// DeleteFiles deletes files by display name after confirmation.
func (a *App) DeleteFiles(ctx context.Context, args []string) error {
	return a.deleteItems(ctx, a.fileManager(), args)
}

func (a *App) deleteItems(ctx context.Context, m services.ContentManager, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	kind := kindLabel(m.Kind())
	keys, err := a.itemKeys(m.Kind(), args, fmt.Sprintf("Enter %s names to delete, one per line", kind))
	if err != nil || len(keys) == 0 {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d %s(s)?", len(keys), kind), a.out)
	if err != nil || !ok {
		return err
	}

	courseID := a.course.ID
	report, err := task.Run(ctx, a.out, "Deleting "+kind+"s", func(ctx context.Context) (services.ItemReport, error) {
		return services.DeleteItems(ctx, m, courseID, keys)
	})
	for _, k := range report.Unauthorized {
		a.printf("User is not authorized to remove %s: %q\n", m.Kind(), k)
	}
	if err != nil {
		a.reportError(ctx, "delete "+kind+"s", err)
	} else {
		a.printf("Deleted %d %s(s).\n", len(report.Done), kind)
	}

	a.shown = m
	if rerr := a.refresh(ctx); err == nil {
		err = rerr
	}
	return err
}

// Publish publishes pages by slug.
func (a *App) Publish(ctx context.Context, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	pm := a.pageManager()
	keys, err := a.itemKeys(models.KindPage, args, "Enter page names to publish, one per line")
	if err != nil || len(keys) == 0 {
		return err
	}

	courseID := a.course.ID
	report, err := task.Run(ctx, a.out, "Publishing pages", func(ctx context.Context) (services.ItemReport, error) {
		return services.PublishItems(ctx, pm, courseID, keys)
	})
	for _, k := range report.Unauthorized {
		a.printf("User is not authorized to publish Page: %q\n", k)
	}
	if err != nil {
		a.reportError(ctx, "publish pages", err)
	} else {
		a.printf("Published %d page(s).\n", len(report.Done))
	}

	a.shown = pm
	if rerr := a.refresh(ctx); err == nil {
		err = rerr
	}
	return err
}

// Open opens the course, a page or a file in the default browser.
func (a *App) Open(ctx context.Context, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	if len(args) == 0 {
		a.println("Usage: open course | open page <name> | open file <name>")
		return nil
	}

	var (
		u   string
		err error
	)
	name := strings.Join(args[1:], " ")
	if args[0] != "course" && name == "" {
		a.println("Usage: open course | open page <name> | open file <name>")
		return nil
	}

	switch args[0] {
	case "course":
		u = a.session.CourseURL(a.course.ID)
	case "page":
		u, err = a.pageManager().URL(ctx, a.course.ID, models.Item{Key: models.KeyFromDisplay(name)})
	case "file":
		u, err = a.fileManager().URL(ctx, a.course.ID, models.Item{Key: name})
	default:
		a.println("Usage: open course | open page <name> | open file <name>")
		return nil
	}
	if err != nil {
		a.reportError(ctx, "open "+args[0], err)
		return err
	}
	a.println(u)
	if err := openBrowser(u); err != nil {
		a.log.Warn(ctx, "open browser failed", "url", u, "error", err)
		a.println("Could not open a browser; use the link above.")
	}
	return nil
}

// Download saves a course file into the download folder.
func (a *App) Download(ctx context.Context, args []string) error {
	if err := a.require(true); err != nil {
		return err
	}
	name := strings.Join(args, " ")
	if name == "" {
		s, err := GetSimpleText(a.reader, "Enter file name to download", a.out)
		if err != nil {
			return err
		}
		name = s
	}
	if name == "" {
		return nil
	}

	fm, courseID := a.fileManager(), a.course.ID
	path, err := task.Run(ctx, a.out, "Downloading "+name, func(ctx context.Context) (string, error) {
		return fm.Download(ctx, courseID, name)
	})
	if err != nil {
		a.reportError(ctx, "download "+name, err)
		return err
	}
	a.println("Saved to", path)
	return nil
}

// itemKeys returns the keys named in args, or prompted one per line. Page
// names may be copied from a listing including the published marker.
// File names may contain spaces, so without prompting all args form one name.
func (a *App) itemKeys(kind models.Kind, args []string, prompt string) ([]string, error) {
	var keys []string
	switch {
	case len(args) == 0:
		lines, err := GetLines(a.reader, prompt, a.out)
		if err != nil {
			return nil, err
		}
		keys = lines
	case kind == models.KindFile:
		keys = []string{strings.Join(args, " ")}
	default:
		marker := strings.TrimSpace(models.PublishedPrefix)
		for _, a := range args {
			if a != marker {
				keys = append(keys, a)
			}
		}
	}

	for i, k := range keys {
		keys[i] = models.KeyFromDisplay(k)
	}
	return keys, nil
}
