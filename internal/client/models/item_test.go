package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageItem_PublishedPrefix(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	pub := PageItem(Page{URL: "week-1", Published: true, UpdatedAt: ts})
	assert.Equal(t, "[published] week-1", pub.Display)
	assert.Equal(t, "week-1", pub.Key)
	assert.Equal(t, "week-1", pub.AlphaKey())
	assert.Equal(t, ts, pub.UpdatedAt)
	assert.Equal(t, KindPage, pub.Kind)

	draft := PageItem(Page{URL: "week-2"})
	assert.Equal(t, "week-2", draft.Display)
	assert.False(t, draft.Published)
}

func TestFileItem_UsesModifiedAt(t *testing.T) {
	mod := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	it := FileItem(File{ID: 9, DisplayName: "rubric.pdf", ModifiedAt: mod, UpdatedAt: mod.Add(time.Hour)})

	assert.Equal(t, KindFile, it.Kind)
	assert.Equal(t, "rubric.pdf", it.Key)
	assert.Equal(t, mod, it.UpdatedAt)
}

func TestKeyFromDisplay(t *testing.T) {
	assert.Equal(t, "week-1", KeyFromDisplay("[published] week-1"))
	assert.Equal(t, "week-1", KeyFromDisplay("week-1"))
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode(" Recent ")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, m)
	assert.Equal(t, "Most Recently Updated", m.Label())

	m, err = ParseSortMode("alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alphabetical", m.Label())

	_, err = ParseSortMode("size")
	require.Error(t, err)
}

func TestCourseLabel(t *testing.T) {
	assert.Equal(t, "Biology 101: (42)", Course{ID: 42, Name: "Biology 101"}.Label())
}

func TestTitleSet(t *testing.T) {
	s := NewTitleSet("Syllabus", "Week 1")
	assert.True(t, s.Has("Syllabus"))
	assert.False(t, s.Has("syllabus"), "titles match exactly")
	assert.Equal(t, 2, s.Len())

	s.Add("Week 2")
	s.Add("Week 2")
	assert.Equal(t, 3, s.Len())
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "rename", DecisionRename.String())
	assert.Equal(t, "overwrite", DecisionOverwrite.String())
	assert.Equal(t, "cancel", DecisionCancel.String())
	assert.Equal(t, "diff", DecisionDiff.String())
}
