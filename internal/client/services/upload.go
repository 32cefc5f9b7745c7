package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/canvas"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/filex"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/logging"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/task"
)

// Prompter asks the user how to settle a title conflict.
type Prompter interface {
	AskConflict(kind models.Kind, title string, canDiff bool) (models.Decision, error)
	// AskTitle returns the replacement title; a blank answer means the user
	// wants to be asked about the conflict again.
	AskTitle(kind models.Kind, current string) (string, error)
	ConfirmOverwrite(kind models.Kind, title string) (bool, error)
	ShowDiff(title, diff string)
}

// Target is the remote collection a batch is uploaded into.
type Target interface {
	Kind() models.Kind
	// ChecksConflicts reports whether titles are checked against existing
	// content before upload.
	ChecksConflicts() bool
	ExistingTitles(ctx context.Context) (*models.TitleSet, error)
	Create(ctx context.Context, c models.UploadCandidate) error
	Overwrite(ctx context.Context, c models.UploadCandidate) error
	Diff(ctx context.Context, c models.UploadCandidate) (string, error)
}

// BatchReport summarises one upload batch.
type BatchReport struct {
	Created      []string
	Overwritten  []string
	Skipped      []string
	TooLarge     []string
	Unauthorized []string
}

// Total is the number of items that reached the remote side.
func (r BatchReport) Total() int {
	return len(r.Created) + len(r.Overwritten)
}

type UploadService interface {
	UploadBatch(ctx context.Context, target Target, paths []string, force bool) (BatchReport, error)
}

type uploadService struct {
	prompt Prompter
	out    io.Writer
	log    logging.Logger
}

// NewUploadService builds an UploadService. Progress is drawn on out.
func NewUploadService(prompt Prompter, out io.Writer, log logging.Logger) UploadService {
	return &uploadService{prompt: prompt, out: out, log: log}
}

type action int

const (
	actSkip action = iota
	actCreate
	actOverwrite
)

// UploadBatch uploads paths in order. Existing titles are read once; every
// create or overwrite adds its title before the next candidate is checked,
// so two files with the same title in one batch conflict with each other.
//
// A payload that is too large or an overwrite the user may not perform is
// recorded in the report and the batch goes on. Any other failure stops the
// batch and is returned together with the partial report.
func (s *uploadService) UploadBatch(ctx context.Context, target Target, paths []string, force bool) (BatchReport, error) {
	var report BatchReport

	existing := models.NewTitleSet()
	if target.ChecksConflicts() {
		var err error
		existing, err = target.ExistingTitles(ctx)
		if err != nil {
			return report, fmt.Errorf("load existing titles: %w", err)
		}
	}

	for _, path := range paths {
		c := models.UploadCandidate{Path: path, Title: filex.TitleFromPath(path)}

		act := actCreate
		if target.ChecksConflicts() {
			var err error
			act, c.Title, err = s.resolve(ctx, target, existing, c, force)
			if err != nil {
				return report, err
			}
		}

		if act == actSkip {
			report.Skipped = append(report.Skipped, path)
			continue
		}

		err := s.apply(ctx, target, act, c)
		switch {
		case err == nil:
			existing.Add(c.Title)
			if act == actCreate {
				report.Created = append(report.Created, c.Title)
			} else {
				report.Overwritten = append(report.Overwritten, c.Title)
			}
		case errors.Is(err, canvas.ErrPayloadTooLarge):
			s.log.Warn(ctx, "upload too large", "kind", target.Kind(), "path", path)
			report.TooLarge = append(report.TooLarge, path)
		case errors.Is(err, canvas.ErrUnauthorized):
			s.log.Warn(ctx, "upload not authorized", "kind", target.Kind(), "title", c.Title)
			report.Unauthorized = append(report.Unauthorized, c.Title)
		default:
			return report, fmt.Errorf("upload %s: %w", path, err)
		}
	}

	return report, nil
}

// resolve runs the conflict loop for one candidate and returns what to do
// with it and under which title.
func (s *uploadService) resolve(ctx context.Context, target Target, existing *models.TitleSet,
	c models.UploadCandidate, force bool) (action, string, error) {

	kind := target.Kind()
	title := c.Title

	for {
		if !existing.Has(title) {
			return actCreate, title, nil
		}
		if force {
			return actOverwrite, title, nil
		}

		d, err := s.prompt.AskConflict(kind, title, kind == models.KindPage)
		if err != nil {
			return actSkip, title, err
		}

		switch d {
		case models.DecisionRename:
			nt, err := s.prompt.AskTitle(kind, title)
			if err != nil {
				return actSkip, title, err
			}
			if nt = strings.TrimSpace(nt); nt != "" {
				title = nt
			}
		case models.DecisionOverwrite:
			ok, err := s.prompt.ConfirmOverwrite(kind, title)
			if err != nil {
				return actSkip, title, err
			}
			if ok {
				return actOverwrite, title, nil
			}
		case models.DecisionDiff:
			diff, err := target.Diff(ctx, models.UploadCandidate{Path: c.Path, Title: title})
			if err != nil {
				return actSkip, title, fmt.Errorf("diff %q: %w", title, err)
			}
			s.prompt.ShowDiff(title, diff)
		default:
			s.log.Debug(ctx, "upload cancelled", "kind", kind, "title", title)
			return actSkip, title, nil
		}
	}
}

func (s *uploadService) apply(ctx context.Context, target Target, act action, c models.UploadCandidate) error {
	verb, fn := "Uploading", target.Create
	if act == actOverwrite {
		verb, fn = "Overwriting", target.Overwrite
	}

	name := fmt.Sprintf("%s %s %q", verb, strings.ToLower(string(target.Kind())), c.Title)
	_, err := task.Run(ctx, s.out, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx, c)
	})
	if err == nil {
		s.log.Info(ctx, "upload done", "kind", target.Kind(), "title", c.Title, "overwrite", act == actOverwrite)
	}
	return err
}
