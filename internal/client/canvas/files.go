package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/models"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/netx"
)

// Files lists a course's files lazily, in listing order.
func (c *Client) Files(ctx context.Context, courseID int64) iter.Seq2[models.File, error] {
	return paginate[models.File](ctx, c, fmt.Sprintf("/courses/%d/files", courseID))
}

// FileByName returns the first course file whose display name is exactly
// displayName.
func (c *Client) FileByName(ctx context.Context, courseID int64, displayName string) (models.File, error) {
	for f, err := range c.Files(ctx, courseID) {
		if err != nil {
			return models.File{}, err
		}
		if f.DisplayName == displayName {
			return f, nil
		}
	}
	return models.File{}, fmt.Errorf("file %q: %w", displayName, ErrNotFound)
}

// DeleteFile removes a file by id.
func (c *Client) DeleteFile(ctx context.Context, fileID int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint(fmt.Sprintf("/files/%d", fileID), nil), nil, nil)
	return err
}

type uploadTicket struct {
	UploadURL    string            `json:"upload_url"`
	UploadParams map[string]string `json:"upload_params"`
}

type uploadAnswer struct {
	models.File
	Location string `json:"location"`
}

// UploadFile sends a local file to the course's files. An existing file with
// the same name is kept; the instance renames the new one.
//
// The upload runs in three steps: a preflight that reserves the upload, a
// multipart POST of the bytes to the storage URL it returns, and a
// confirmation request when storage answers with a redirect or a location.
func (c *Client) UploadFile(ctx context.Context, courseID int64, path string) (models.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return models.File{}, err
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return models.File{}, err
	}

	name := filepath.Base(path)
	form := url.Values{
		"name":         {name},
		"size":         {strconv.FormatInt(st.Size(), 10)},
		"on_duplicate": {"rename"},
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		form.Set("content_type", ct)
	}

	var ticket uploadTicket
	_, err = c.do(ctx, http.MethodPost, c.endpoint(fmt.Sprintf("/courses/%d/files", courseID), nil), form, &ticket)
	if err != nil {
		return models.File{}, fmt.Errorf("upload preflight: %w", err)
	}
	if ticket.UploadURL == "" {
		return models.File{}, fmt.Errorf("upload preflight: %w: no upload url", ErrBadRequest)
	}

	res, err := netx.UploadMultipart(ctx, c.http, ticket.UploadURL, ticket.UploadParams, "file", name, fh)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return models.File{}, fmt.Errorf("upload: %w", newAPIError(se.StatusCode, http.Header{}, []byte(se.Body)))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.File{}, ctxErr
		}
		return models.File{}, fmt.Errorf("upload: %w: %v", ErrUnavailable, err)
	}

	confirm := res.Location
	var answer uploadAnswer
	if res.StatusCode < http.StatusMultipleChoices && len(res.Body) > 0 {
		if err := json.Unmarshal(res.Body, &answer); err != nil {
			return models.File{}, fmt.Errorf("upload: decode answer: %w", err)
		}
		if answer.ID != 0 {
			return answer.File, nil
		}
		confirm = answer.Location
	}
	if confirm == "" {
		return models.File{}, fmt.Errorf("upload: %w: storage gave no confirmation", ErrBadRequest)
	}

	var file models.File
	if _, err := c.do(ctx, http.MethodGet, confirm, nil, &file); err != nil {
		return models.File{}, fmt.Errorf("upload confirm: %w", err)
	}
	return file, nil
}

// DownloadFile streams a file's content to w.
func (c *Client) DownloadFile(ctx context.Context, f models.File, w io.Writer) (int64, error) {
	if f.URL == "" {
		return 0, fmt.Errorf("file %q has no download url: %w", f.DisplayName, ErrNotFound)
	}
	n, err := netx.Download(ctx, c.http, f.URL, w)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return n, newAPIError(se.StatusCode, http.Header{}, []byte(se.Body))
		}
		return n, err
	}
	return n, nil
}
