package models

// UploadCandidate is one local file in an upload batch together with the
// title it will be uploaded under. It lives only for the batch.
type UploadCandidate struct {
	Path  string
	Title string
}

// Decision is the user's answer to a title conflict.
type Decision int

const (
	DecisionCancel Decision = iota
	DecisionRename
	DecisionOverwrite
	// DecisionDiff asks to see the differences first; it never ends the
	// conflict loop by itself.
	DecisionDiff
)

func (d Decision) String() string {
	switch d {
	case DecisionRename:
		return "rename"
	case DecisionOverwrite:
		return "overwrite"
	case DecisionDiff:
		return "diff"
	default:
		return "cancel"
	}
}

// TitleSet is the collection of titles that already exist remotely. Titles
// are matched exactly.
type TitleSet struct {
	titles map[string]struct{}
}

func NewTitleSet(titles ...string) *TitleSet {
	s := &TitleSet{titles: make(map[string]struct{}, len(titles))}
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

func (s *TitleSet) Has(title string) bool {
	_, ok := s.titles[title]
	return ok
}

func (s *TitleSet) Add(title string) {
	s.titles[title] = struct{}{}
}

func (s *TitleSet) Len() int {
	return len(s.titles)
}
