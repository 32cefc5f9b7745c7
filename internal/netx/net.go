// Package netx holds the raw HTTP exchanges that are not Canvas API calls:
// posting file bytes to the storage endpoint handed out by an upload
// preflight, and streaming a file's download URL to disk.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
)

// StatusError reports an unexpected HTTP status from a raw exchange.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s; body: %s", e.Status, e.Body)
}

// UploadResult is the storage endpoint's answer to a multipart upload. A
// redirect is not followed: Location carries the confirmation URL instead.
type UploadResult struct {
	StatusCode int
	Location   string
	Body       []byte
}

// UploadMultipart posts params followed by the file part to url. Storage
// endpoints require the file to be the last form field, so params are
// written first in key order.
func UploadMultipart(ctx context.Context, c *http.Client, url string, params map[string]string,
	fieldName, fileName string, r io.Reader) (*UploadResult, error) {

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, params[k]); err != nil {
			return nil, err
		}
	}

	fw, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := noRedirect(c).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	return &UploadResult{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
		Body:       body,
	}, nil
}

// Download copies the body of a GET on url into w and returns the byte count.
func Download(ctx context.Context, c *http.Client, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	return io.Copy(w, resp.Body)
}

func noRedirect(c *http.Client) *http.Client {
	if c == nil {
		c = http.DefaultClient
	}
	cp := *c
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &cp
}
