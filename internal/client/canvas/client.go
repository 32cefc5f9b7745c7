package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	apiPrefix      = "/api/v1"
	defaultPerPage = 100
)

// Client talks to one Canvas instance with one access token.
type Client struct {
	base    string
	token   string
	http    *http.Client
	perPage int
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPerPage sets the page size requested from paginated endpoints.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// New validates the instance URL and token and returns a Client. No request
// is made; the first API call tells whether the token is accepted.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, "\r\n\t ") {
		return nil, ErrInvalidAccessToken
	}

	c := &Client{
		base:    strings.TrimRight(u.String(), "/"),
		token:   token,
		http:    http.DefaultClient,
		perPage: defaultPerPage,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// endpoint resolves an API path (without the /api/v1 prefix) with query.
func (c *Client) endpoint(path string, q url.Values) string {
	s := c.base + apiPrefix + path
	if len(q) > 0 {
		s += "?" + q.Encode()
	}
	return s
}

// do sends one request and decodes a JSON answer into out when out is not
// nil. rawURL is absolute. It returns the next-page link, if any.
func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values, out any) (string, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return "", newAPIError(resp.StatusCode, resp.Header, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return "", fmt.Errorf("decode %s %s: %w", method, req.URL.Path, err)
		}
	}

	return nextLink(resp.Header.Values("Link")), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, http.MethodGet, c.endpoint(path, nil), nil, out)
	return err
}

// paginate lazily walks a list endpoint, one page request at a time.
func paginate[T any](ctx context.Context, c *Client, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		next := c.endpoint(path, url.Values{"per_page": {strconv.Itoa(c.perPage)}})
		for next != "" {
			var batch []T
			link, err := c.do(ctx, http.MethodGet, next, nil, &batch)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, v := range batch {
				if !yield(v, nil) {
					return
				}
			}
			next = link
		}
	}
}

// nextLink extracts the rel="next" target from RFC 5988 Link headers.
func nextLink(values []string) string {
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			segs := strings.Split(part, ";")
			if len(segs) < 2 {
				continue
			}
			target := strings.Trim(strings.TrimSpace(segs[0]), "<>")
			for _, p := range segs[1:] {
				p = strings.ReplaceAll(strings.TrimSpace(p), " ", "")
				if p == `rel="next"` || p == "rel=next" {
					return target
				}
			}
		}
	}
	return ""
}

// CourseURL is the browser link to a course.
func (c *Client) CourseURL(courseID int64) string {
	return fmt.Sprintf("%s/courses/%d", c.base, courseID)
}

// PageURL is the browser link to a page by slug.
func (c *Client) PageURL(courseID int64, pageURL string) string {
	return fmt.Sprintf("%s/pages/%s", c.CourseURL(courseID), pageURL)
}

// FileURL is the browser link to a course file.
func (c *Client) FileURL(courseID int64, fileID int64) string {
	return fmt.Sprintf("%s/files/%d", c.CourseURL(courseID), fileID)
}
