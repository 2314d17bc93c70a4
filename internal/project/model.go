// Package project defines the time-tagged lyric model: projects, sync
// lines, and ad-lib parts, each carrying a character sequence with a
// parallel track of nullable second timestamps.
package project

import "github.com/google/uuid"

// Singer identifies which vocalist a line belongs to. Presentation only;
// the timing algorithms never read it.
const (
	SingerOne = 1
	SingerTwo = 2
)

// AdLibPart is a secondary time-tagged track owned by one Line, e.g.
// background vocals split out of parenthesized lyric text.
type AdLibPart struct {
	ID    string     `json:"id"`
	Chars []string   `json:"chars"`
	Time  []*float64 `json:"time"`
}

// Line is one unit of lyric content: a main character track plus any
// ad-lib parts. Invariant: len(Chars) == len(Time) for every track.
type Line struct {
	ID      string      `json:"id"`
	Chars   []string    `json:"chars"`
	Time    []*float64  `json:"time"`
	AdLibs  []AdLibPart `json:"adlibs,omitempty"`
	GroupID string      `json:"groupId,omitempty"`
	Label   string      `json:"label,omitempty"`
	Singer  int         `json:"singer"`
}

// Project owns an ordered set of lines plus track metadata and the path
// of the audio source the timestamps refer to.
type Project struct {
	ID        string
	Title     string
	Artist    string
	Credits   string
	CoverRef  string
	AudioPath string
	Lines     []Line
}

// NewLine builds an unsynced line from a character sequence.
func NewLine(chars []string) Line {
	return Line{
		ID:     uuid.NewString(),
		Chars:  chars,
		Time:   make([]*float64, len(chars)),
		Singer: SingerOne,
	}
}

// NewAdLib builds an unsynced ad-lib part from a character sequence.
func NewAdLib(chars []string) AdLibPart {
	return AdLibPart{
		ID:    uuid.NewString(),
		Chars: chars,
		Time:  make([]*float64, len(chars)),
	}
}

// New creates an empty project.
func New(title string) *Project {
	return &Project{ID: uuid.NewString(), Title: title}
}

// Normalize repairs any track whose timestamp slice has drifted from its
// character slice (e.g. after an external text edit). A mismatched track
// is reset to all-unsynced; derivations can then never index out of
// bounds.
func (l *Line) Normalize() {
	if len(l.Time) != len(l.Chars) {
		l.Time = make([]*float64, len(l.Chars))
	}
	for i := range l.AdLibs {
		a := &l.AdLibs[i]
		if len(a.Time) != len(a.Chars) {
			a.Time = make([]*float64, len(a.Chars))
		}
	}
	if l.Singer != SingerTwo {
		l.Singer = SingerOne
	}
}

// Normalize repairs every line in the project.
func (p *Project) Normalize() {
	for i := range p.Lines {
		p.Lines[i].Normalize()
	}
}

// SetText replaces the main character sequence. The timestamp track is
// reset: timings recorded for the old text are meaningless for the new.
func (l *Line) SetText(chars []string) {
	l.Chars = chars
	l.Time = make([]*float64, len(chars))
}

// SetAdLibText replaces an ad-lib's character sequence and resets its
// timestamp track. Out-of-range indices are ignored.
func (l *Line) SetAdLibText(idx int, chars []string) {
	if idx < 0 || idx >= len(l.AdLibs) {
		return
	}
	l.AdLibs[idx].Chars = chars
	l.AdLibs[idx].Time = make([]*float64, len(chars))
}

// ClearTimes resets the main track and every ad-lib track to unsynced.
func (l *Line) ClearTimes() {
	l.Time = make([]*float64, len(l.Chars))
	for i := range l.AdLibs {
		l.AdLibs[i].Time = make([]*float64, len(l.AdLibs[i].Chars))
	}
}

// LineByID returns the line with the given id, or nil.
func (p *Project) LineByID(id string) *Line {
	for i := range p.Lines {
		if p.Lines[i].ID == id {
			return &p.Lines[i]
		}
	}
	return nil
}

// GroupMembers returns pointers to every line sharing the given group id.
// An empty id never matches.
func (p *Project) GroupMembers(groupID string) []*Line {
	if groupID == "" {
		return nil
	}
	var members []*Line
	for i := range p.Lines {
		if p.Lines[i].GroupID == groupID {
			members = append(members, &p.Lines[i])
		}
	}
	return members
}

// Text returns the main character sequence joined back into a string.
func (l *Line) Text() string {
	var s string
	for _, c := range l.Chars {
		s += c
	}
	return s
}

// Text returns the ad-lib character sequence joined back into a string.
func (a *AdLibPart) Text() string {
	var s string
	for _, c := range a.Chars {
		s += c
	}
	return s
}
