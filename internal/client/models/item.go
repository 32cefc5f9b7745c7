package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind tags the content variant an Item belongs to.
type Kind string

const (
	KindPage Kind = "Page"
	KindFile Kind = "File"
)

// PublishedPrefix marks published pages in listings.
const PublishedPrefix = "[published] "

// Item is the uniform listing view over pages and files.
//
// Key identifies the item for follow-up operations: the slug for pages, the
// display name for files. Display is what the listing prints and what the
// alphabetical sort compares.
type Item struct {
	Kind      Kind
	Key       string
	Display   string
	UpdatedAt time.Time
	Published bool
}

// PageItem converts a page to its listing view.
func PageItem(p Page) Item {
	display := p.URL
	if p.Published {
		display = PublishedPrefix + p.URL
	}
	return Item{Kind: KindPage, Key: p.URL, Display: display, UpdatedAt: p.UpdatedAt, Published: p.Published}
}

// FileItem converts a file to its listing view. Files sort by modification
// time rather than by the attachment's own update time.
func FileItem(f File) Item {
	return Item{Kind: KindFile, Key: f.DisplayName, Display: f.DisplayName, UpdatedAt: f.ModifiedAt}
}

// AlphaKey is the string the alphabetical sort compares: the slug for pages
// (without the published marker) and the display name for files.
func (i Item) AlphaKey() string {
	return i.Key
}

// KeyFromDisplay strips the listing decoration so a value typed from a
// listing line can be used as an item key.
func KeyFromDisplay(display string) string {
	return strings.TrimPrefix(display, PublishedPrefix)
}

// SortMode selects the listing order.
type SortMode string

const (
	SortRecent SortMode = "recent"
	SortAlpha  SortMode = "alpha"
)

// ParseSortMode accepts "recent" or "alpha" in any case.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortRecent:
		return SortRecent, nil
	case SortAlpha:
		return SortAlpha, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want recent or alpha)", s)
}

// Label is the human name of the sort mode.
func (m SortMode) Label() string {
	if m == SortRecent {
		return "Most Recently Updated"
	}
	return "Alphabetical"
}
