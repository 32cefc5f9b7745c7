package canvas

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
)

func pagePath(courseID int64, pageURL string) string {
	return fmt.Sprintf("/courses/%d/pages/%s", courseID, url.PathEscape(pageURL))
}

// Pages lists a course's wiki pages lazily, in listing order.
func (c *Client) Pages(ctx context.Context, courseID int64) iter.Seq2[models.Page, error] {
	return paginate[models.Page](ctx, c, fmt.Sprintf("/courses/%d/pages", courseID))
}

// LatestRevision returns the newest revision of a page, including its body.
func (c *Client) LatestRevision(ctx context.Context, courseID int64, pageURL string) (models.Revision, error) {
	var rev models.Revision
	if err := c.get(ctx, pagePath(courseID, pageURL)+"/revisions/latest", &rev); err != nil {
		return models.Revision{}, err
	}
	return rev, nil
}

// CreatePage adds a page to a course. A body over the instance limit matches
// ErrPayloadTooLarge.
func (c *Client) CreatePage(ctx context.Context, courseID int64, in models.PageInput) (models.Page, error) {
	var page models.Page
	_, err := c.do(ctx, http.MethodPost, c.endpoint(fmt.Sprintf("/courses/%d/pages", courseID), nil), pageForm(in), &page)
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// UpdatePage overwrites the fields set in in on an existing page.
func (c *Client) UpdatePage(ctx context.Context, courseID int64, pageURL string, in models.PageInput) (models.Page, error) {
	var page models.Page
	_, err := c.do(ctx, http.MethodPut, c.endpoint(pagePath(courseID, pageURL), nil), pageForm(in), &page)
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// DeletePage removes a page by slug.
func (c *Client) DeletePage(ctx context.Context, courseID int64, pageURL string) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(pagePath(courseID, pageURL), nil), nil, nil)
	return err
}

func pageForm(in models.PageInput) url.Values {
	form := url.Values{}
	if in.Title != "" {
		form.Set("wiki_page[title]", in.Title)
	}
	if in.Body != nil {
		form.Set("wiki_page[body]", *in.Body)
	}
	if in.Published != nil {
		form.Set("wiki_page[published]", strconv.FormatBool(*in.Published))
	}
	return form
}
