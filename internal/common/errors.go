// Package common holds sentinel errors and small helpers shared by the
// client packages. Callers should match the errors with errors.Is.
package common

import "errors"

var (
	// ErrNoSession is returned by commands that need a logged-in session.
	ErrNoSession = errors.New("not logged in")

	// ErrNoCourse is returned by commands that need a selected course.
	ErrNoCourse = errors.New("no course selected")

	// ErrInvalidCourseID marks course ids that are missing or not numeric.
	ErrInvalidCourseID = errors.New("invalid or missing course id")
)
