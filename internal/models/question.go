package models

// Question is a single board tile's content. Questions are loaded once from
// the dataset and never mutated afterwards.
type Question struct {
	ID         string `json:"id"`
	Level      int    `json:"level"`
	SongTitle  string `json:"songTitle"`
	Artist     string `json:"artist"`
	TargetWord string `json:"targetWord"`
	Hint       string `json:"hint,omitempty"`
	HostNote   string `json:"hostNote,omitempty"`
}

// HintText returns the text shown when the hint is revealed, preferring the
// explicit hint over the host note.
func (q Question) HintText() string {
	if q.Hint != "" {
		return q.Hint
	}
	return q.HostNote
}

// HasHint reports whether the question carries any hint or host note.
func (q Question) HasHint() bool {
	return q.Hint != "" || q.HostNote != ""
}

// Category groups questions under a unique name.
type Category struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Dataset is the static question data as stored in questions.json.
type Dataset struct {
	Categories []Category `json:"categories"`
}
