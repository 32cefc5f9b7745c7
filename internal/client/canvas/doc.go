// Package canvas is the uploader's only network boundary: a small client for
// the Canvas LMS REST API.
//
// # Overview
//
// The package provides:
//  1. The Session interface: course lookup, enrolled courses, page
//     list/create/update/delete/latest revision, file list/upload/delete/
//     lookup by name/download, and deep-link helpers.
//  2. Client, the REST implementation. It authenticates with a bearer token,
//     follows Link-header pagination lazily (iter.Seq2), and performs the
//     three-step file upload (preflight, storage POST, confirmation).
//
// # Error Handling
//
// HTTP failures are returned as *APIError values that unwrap to sentinels,
// so callers match with errors.Is: ErrInvalidAccessToken, ErrUnauthorized,
// ErrNotFound, ErrPayloadTooLarge, ErrBadRequest. Transport failures match
// ErrUnavailable.
//
// Every call is made once. There are no retries and no client-side timeout;
// the context is the only way to end a call early.
package canvas
