package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxMessageLen = 200

var (
	ErrInvalidAccessToken = errors.New("invalid or missing access token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("resource does not exist")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrBadRequest         = errors.New("bad request")
	ErrUnavailable        = errors.New("canvas unavailable")
	ErrInvalidURL         = errors.New("invalid canvas url")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.kind != nil {
		return fmt.Sprintf("canvas: %s (%d): %s", e.kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("canvas: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// newAPIError classifies a failed response.
func newAPIError(status int, header http.Header, body []byte) *APIError {
	e := &APIError{StatusCode: status, Message: errorMessage(body)}

	switch {
	case status == http.StatusUnauthorized && header.Get("WWW-Authenticate") != "":
		e.kind = ErrInvalidAccessToken
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		e.kind = ErrUnauthorized
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status == http.StatusRequestEntityTooLarge:
		e.kind = ErrPayloadTooLarge
	case status == http.StatusBadRequest && tooLarge(body):
		e.kind = ErrPayloadTooLarge
	case status == http.StatusBadRequest:
		e.kind = ErrBadRequest
	}
	return e
}

func tooLarge(body []byte) bool {
	s := string(body)
	return strings.Contains(s, `"message":"too_long"`) || strings.Contains(s, "exceeds quota")
}

// errorMessage pulls a readable message out of the error payload shapes the
// API uses, falling back to the raw body.
func errorMessage(body []byte) string {
	var list struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &list) == nil && len(list.Errors) > 0 && list.Errors[0].Message != "" {
		return list.Errors[0].Message
	}

	var single struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &single) == nil && single.Message != "" {
		return single.Message
	}

	s := strings.TrimSpace(string(body))
	if len(s) > maxMessageLen {
		n := maxMessageLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "..."
	}
	return s
}
