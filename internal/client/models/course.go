// Package models defines the Canvas objects the uploader works with and the
// small value types that describe uploads, searches and listings.
package models

import (
	"fmt"
	"time"
)

// Course is a remote container of pages and files.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Label renders the course the way the course picker shows it.
func (c Course) Label() string {
	return fmt.Sprintf("%s: (%d)", c.Name, c.ID)
}

// Page is a wiki page. URL is the page slug, not an absolute address;
// HTMLURL is the browser link returned by the API.
type Page struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updated_at"`
	HTMLURL   string    `json:"html_url"`
	Body      string    `json:"body,omitempty"`
}

// Revision is a page revision. Body is empty for pages that never had content.
type Revision struct {
	RevisionID int64     `json:"revision_id"`
	UpdatedAt  time.Time `json:"updated_at"`
	Latest     bool      `json:"latest"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
}

// File is a course file attachment.
type File struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content-type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	UpdatedAt   time.Time `json:"updated_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// PageInput carries the fields sent when creating or updating a page. Nil
// pointers are left out of the request; a non-nil empty Body clears the page.
type PageInput struct {
	Title     string
	Body      *string
	Published *bool
}
