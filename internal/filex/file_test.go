package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/tmp/Week 1 Overview.html", want: "Week 1 Overview"},
		{path: "syllabus.md", want: "syllabus"},
		{path: "archive.tar.gz", want: "archive.tar"},
		{path: "notes", want: "notes"},
		{path: ".hidden", want: ".hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromPath(tt.path))
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(ok, []byte("<p>héllo</p>"), 0o600))
	got, err := ReadText(ok)
	require.NoError(t, err)
	assert.Equal(t, "<p>héllo</p>", got)

	bad := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o600))
	_, err = ReadText(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotUTF8))

	_, err = ReadText(filepath.Join(dir, "missing.html"))
	require.Error(t, err)
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("download")
	require.NoError(t, err)

	want := filepath.Join(tmp, "download")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("download")
	require.NoError(t, err)

	second, err := EnsureSubdDir("download")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("download", []byte("x"), 0o660))

	_, err := EnsureSubdDir("download")
	require.Error(t, err, "should fail when a file exists with the same name")
}
