package timing

import (
	"math"

	"github.com/littletheworld/LyrPro/internal/project"
)

// TargetMain selects a line's main track as the active scrub target;
// values >= 0 select the ad-lib at that index.
const TargetMain = -1

const (
	// ScrubScale is the discrete range of the scrub position input,
	// mapped proportionally onto character indices.
	ScrubScale = 1000

	// adLibRewind is how far playback rewinds after finishing a line
	// that carried ad-libs, so the listener re-hears context before the
	// next line's main vocal.
	adLibRewind = 3.0

	// targetLeadIn is the small pre-roll applied when switching targets,
	// seeking playback to just before the target's first timestamp.
	targetLeadIn = 0.1
)

// Editor assigns timestamps to the characters of one project as the
// user scrubs over the audio timeline. It mutates line tracks in place;
// callers recompute derived projections (effective ends) after any edit.
type Editor struct {
	Project *project.Project

	// LineIdx is the currently selected line; Target the active track
	// within it; Cursor the last character index touched by a scrub.
	LineIdx int
	Target  int
	Cursor  int
}

// NewEditor starts editing at the first line's main track.
func NewEditor(p *project.Project) *Editor {
	p.Normalize()
	return &Editor{Project: p, Target: TargetMain}
}

// Line returns the currently selected line, or nil when the project has
// no lines or the selection ran past the end.
func (e *Editor) Line() *project.Line {
	if e.Project == nil || e.LineIdx < 0 || e.LineIdx >= len(e.Project.Lines) {
		return nil
	}
	return &e.Project.Lines[e.LineIdx]
}

// track returns the active target's character and timestamp slices.
func (e *Editor) track() ([]string, []*float64) {
	l := e.Line()
	if l == nil {
		return nil, nil
	}
	if e.Target >= 0 && e.Target < len(l.AdLibs) {
		return l.AdLibs[e.Target].Chars, l.AdLibs[e.Target].Time
	}
	return l.Chars, l.Time
}

// IndexForPosition maps a scrub position in [0, ScrubScale] onto a
// character index of the active target, clamped to the track bounds.
func (e *Editor) IndexForPosition(pos int) int {
	chars, _ := e.track()
	if len(chars) == 0 {
		return 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos > ScrubScale {
		pos = ScrubScale
	}
	idx := int(math.Round(float64(pos) / ScrubScale * float64(len(chars)-1)))
	return clampIndex(idx, len(chars))
}

// Scrub assigns the current playback time to the character at scrub
// position pos. Every later timestamp on the active track is cleared —
// the edit is authoritative for "now", the future undetermined — and
// any gap back to the nearest earlier timestamp is filled by linear
// interpolation, assuming uniform articulation across the gap.
func (e *Editor) Scrub(pos int, now float64) {
	e.ScrubIndex(e.IndexForPosition(pos), now)
}

// ScrubIndex is Scrub with an explicit character index.
func (e *Editor) ScrubIndex(idx int, now float64) {
	if idx < 0 {
		panic("timing: negative scrub index")
	}
	chars, stamps := e.track()
	if len(chars) == 0 {
		return
	}
	idx = clampIndex(idx, len(chars))

	t := now
	stamps[idx] = &t
	for k := idx + 1; k < len(stamps); k++ {
		stamps[k] = nil
	}

	// Nearest earlier defined timestamp; interpolate across any gap.
	prev := -1
	for j := idx - 1; j >= 0; j-- {
		if stamps[j] != nil {
			prev = j
			break
		}
	}
	if prev >= 0 && idx-prev > 1 {
		span := *stamps[idx] - *stamps[prev]
		for k := prev + 1; k < idx; k++ {
			v := *stamps[prev] + span*float64(k-prev)/float64(idx-prev)
			vt := v
			stamps[k] = &vt
		}
	}

	e.Cursor = idx
}

// Commit writes the authoritative release time at idx and, when the
// target's final character just landed, advances the active target:
// main track first, then the first unsynced ad-lib, then the next line.
// The returned seek, when non-nil, is a playback position the host
// should jump to (group rewind, ad-lib lead-in, or target pre-roll).
func (e *Editor) Commit(idx int, now float64) (seek *float64) {
	chars, stamps := e.track()
	if len(chars) == 0 {
		return nil
	}
	if idx < 0 {
		panic("timing: negative commit index")
	}
	idx = clampIndex(idx, len(chars))
	t := now
	stamps[idx] = &t
	e.Cursor = idx

	if idx != len(chars)-1 || !IsPartSynced(chars, stamps) {
		return nil
	}

	l := e.Line()
	if !IsPartSynced(l.Chars, l.Time) {
		return e.SelectTarget(TargetMain)
	}
	for i := range l.AdLibs {
		if !IsPartSynced(l.AdLibs[i].Chars, l.AdLibs[i].Time) {
			return e.SelectTarget(i)
		}
	}
	return e.advanceLine(now)
}

// advanceLine moves to the next line after the current one fully
// synced. A grouped successor rewinds playback to the group's earliest
// start so the simultaneous part can be synced from its true beginning;
// otherwise a line that carried ad-libs rewinds by a fixed lead-in.
func (e *Editor) advanceLine(now float64) *float64 {
	finished := e.Line()
	e.LineIdx++
	e.Target = TargetMain
	e.Cursor = 0

	next := e.Line()
	if next == nil {
		return nil
	}

	if finished.GroupID != "" && next.GroupID == finished.GroupID {
		start := math.Inf(1)
		for _, m := range e.Project.GroupMembers(finished.GroupID) {
			if s := LineStartTime(m); s < start {
				start = s
			}
		}
		if !math.IsInf(start, 1) {
			s := clampTime(start)
			return &s
		}
		return nil
	}

	if len(finished.AdLibs) > 0 {
		s := clampTime(now - adLibRewind)
		return &s
	}
	return nil
}

// SelectTarget makes the given track the active scrub target, placing
// the cursor on its last synced character and returning a seek to just
// before the target's start when one exists.
func (e *Editor) SelectTarget(target int) *float64 {
	l := e.Line()
	if l == nil {
		return nil
	}
	if target < 0 || target >= len(l.AdLibs) {
		target = TargetMain
	}
	e.Target = target

	_, stamps := e.track()
	e.Cursor = lastSyncedIndex(stamps)

	var start float64
	if target == TargetMain {
		start = trackMin(l.Time)
	} else {
		start = AdLibStartTime(&l.AdLibs[target])
	}
	if math.IsInf(start, 1) {
		return nil
	}
	s := clampTime(start - targetLeadIn)
	return &s
}

// SelectLine jumps to an arbitrary line's main track.
func (e *Editor) SelectLine(idx int) *float64 {
	if e.Project == nil || len(e.Project.Lines) == 0 {
		return nil
	}
	e.LineIdx = clampIndex(idx, len(e.Project.Lines))
	return e.SelectTarget(TargetMain)
}

// ResetLine clears every timestamp on one line (main and ad-libs) and
// returns a seek to shortly before where the line used to start, so it
// can be replayed and re-synced.
func (e *Editor) ResetLine(idx int) *float64 {
	if e.Project == nil || len(e.Project.Lines) == 0 {
		return nil
	}
	idx = clampIndex(idx, len(e.Project.Lines))
	l := &e.Project.Lines[idx]

	start := LineStartTime(l)
	l.ClearTimes()
	if idx == e.LineIdx {
		e.Cursor = 0
	}
	if math.IsInf(start, 1) {
		return nil
	}
	s := clampTime(start - adLibRewind)
	return &s
}

// lastSyncedIndex returns the last index carrying a timestamp, or 0.
func lastSyncedIndex(stamps []*float64) int {
	for i := len(stamps) - 1; i >= 0; i-- {
		if stamps[i] != nil {
			return i
		}
	}
	return 0
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

func clampTime(t float64) float64 {
	if t < 0 {
		return 0
	}
	return t
}
