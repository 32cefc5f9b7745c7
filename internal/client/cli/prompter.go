package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

// replPrompter answers services.Prompter questions on the REPL streams.
type replPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *replPrompter) AskConflict(kind models.Kind, title string, canDiff bool) (models.Decision, error) {
	choices := "(r)ename, (o)verwrite, (c)ancel"
	if canDiff {
		choices = "(r)ename, (o)verwrite, (d)iff, (c)ancel"
	}
	prompt := fmt.Sprintf("%s %q already exists. %s?", kind, title, choices)

	for {
		ans, err := GetSimpleText(p.reader, prompt, p.out)
		if err != nil {
			return models.DecisionCancel, err
		}
		switch strings.ToLower(ans) {
		case "r", "rename":
			return models.DecisionRename, nil
		case "o", "overwrite":
			return models.DecisionOverwrite, nil
		case "d", "diff":
			if canDiff {
				return models.DecisionDiff, nil
			}
		case "c", "cancel":
			return models.DecisionCancel, nil
		}
		fmt.Fprintln(p.out, "Please answer with one of", choices)
	}
}

func (p *replPrompter) AskTitle(kind models.Kind, current string) (string, error) {
	return GetSimpleText(p.reader, fmt.Sprintf("New title for %s %q", strings.ToLower(string(kind)), current), p.out)
}

func (p *replPrompter) ConfirmOverwrite(kind models.Kind, title string) (bool, error) {
	return Confirm(p.reader, fmt.Sprintf("Are you sure you want to overwrite %s %q?", strings.ToLower(string(kind)), title), p.out)
}

func (p *replPrompter) ShowDiff(title, diff string) {
	fmt.Fprintf(p.out, "--- remote %q\n+++ local\n%s\n", title, diff)
}
