// Package cli provides the interactive command-line front end of the
// uploader.
//
// It wires configuration, the Canvas session and the application services
// into a REPL. Typical flow: login with an access token, pick a course, then
// upload, list, search or manage content.
//
// Key features:
//   - Login / Logout with a personal access token
//   - Course selection from enrolments or by id
//   - Page and file uploads with title conflict resolution
//   - Listings sorted by recency or name, with delete, publish and download
//   - Page content search across one or all enrolled courses
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
