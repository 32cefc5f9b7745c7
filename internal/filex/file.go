// Package filex contains the local file system helpers used when preparing
// uploads and saving downloads.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrNotUTF8 is returned by ReadText for files that are not valid UTF-8.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// TitleFromPath derives an upload title from a file name: the base name with
// its last extension removed. Dot-files keep their full name.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" {
		return base
	}
	return title
}

// ReadText reads a whole file and checks that it is UTF-8 text.
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(b), nil
}

// EnsureSubdDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
