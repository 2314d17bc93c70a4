package timing

import (
	"math"

	"github.com/littletheworld/LyrPro/internal/project"
)

// preRoll is the highlight tolerance before a line's first timestamp,
// so the active state lands slightly ahead of the vocal.
const preRoll = 0.2

// Selection is the per-frame result of active-line selection: which
// lines are currently being sung, the single focus line used for scroll
// anchoring, and the anchor line the viewport should pin to (the top of
// a duet block when the focus is grouped).
type Selection struct {
	Active   map[string]bool
	FocusID  string
	AnchorID string
}

// Selector tracks focus and anchor across frames. That pair is the only
// state the selection carries between samples; everything else is a
// pure function of (currentTime, lines, effective ends).
type Selector struct {
	focusID  string
	anchorID string
}

// Select determines the active set, focus, and anchor for the given
// playback time. Focus is sticky: the prior focus is kept while it
// remains active, otherwise the latest-starting active line wins, and
// with nothing active the most recently started line stands in so the
// viewport doesn't jump during gaps.
func (s *Selector) Select(now float64, lines []project.Line, effEnds map[string]float64) Selection {
	active := make(map[string]bool, len(lines))
	lastStartedID := ""
	lastStarted := math.Inf(-1)

	focusCandidate := ""
	focusStart := math.Inf(-1)

	for i := range lines {
		l := &lines[i]
		start := LineStartTime(l)

		if start <= now && start > lastStarted {
			lastStarted = start
			lastStartedID = l.ID
		}

		end, ok := effEnds[l.ID]
		if !ok {
			continue
		}
		if now >= start-preRoll && now < end {
			active[l.ID] = true
			if start > focusStart {
				focusStart = start
				focusCandidate = l.ID
			}
		}
	}

	focus := s.focusID
	if !active[focus] {
		focus = focusCandidate
		if focus == "" {
			focus = lastStartedID
		}
	}

	if focus != s.focusID {
		s.anchorID = anchorFor(focus, lines)
		s.focusID = focus
	}

	return Selection{Active: active, FocusID: s.focusID, AnchorID: s.anchorID}
}

// anchorFor promotes a grouped focus line to its group's earliest
// starting member, so scrolling pins to the top of a simultaneous
// block rather than whichever sub-line became focus.
func anchorFor(focusID string, lines []project.Line) string {
	if focusID == "" {
		return ""
	}
	var focus *project.Line
	for i := range lines {
		if lines[i].ID == focusID {
			focus = &lines[i]
			break
		}
	}
	if focus == nil || focus.GroupID == "" {
		return focusID
	}

	anchor := focusID
	anchorStart := LineStartTime(focus)
	for i := range lines {
		l := &lines[i]
		if l.GroupID != focus.GroupID {
			continue
		}
		if s := LineStartTime(l); s < anchorStart {
			anchorStart = s
			anchor = l.ID
		}
	}
	return anchor
}

// FillPercent computes the fractional fill of a track at the given
// playback time, in [0, 100]. endOverride supplies the boundary the
// trailing segment animates toward (typically the next line's start or
// the line's effective end); complete forces a full fill for lines
// already past.
//
// A character's timestamp marks the moment it is fully sung, so with
// the last landed timestamp at index i, chars 0..i are filled and the
// segment to the next defined timestamp fills chars i+1..j
// continuously. Without a usable segment end the fill snaps to whole
// characters.
func FillPercent(chars []string, stamps []*float64, now float64, endOverride *float64, complete bool) float64 {
	if complete {
		return 100
	}
	n := len(chars)
	if n == 0 || len(stamps) != n {
		return 0
	}

	// Last character whose timestamp has passed.
	last := -1
	for i := 0; i < n; i++ {
		if stamps[i] != nil && *stamps[i] <= now {
			last = i
		}
	}
	if last < 0 {
		return 0
	}

	segStart := *stamps[last]

	// Segment end: the next defined timestamp, else the override.
	var segEnd *float64
	span := 0.0
	for j := last + 1; j < n; j++ {
		if stamps[j] != nil {
			segEnd = stamps[j]
			span = float64(j - last)
			break
		}
	}
	if segEnd == nil {
		segEnd = endOverride
		span = float64(n - 1 - last)
	}

	if segEnd == nil || *segEnd <= segStart || span == 0 {
		return float64(last+1) / float64(n) * 100
	}

	frac := (now - segStart) / (*segEnd - segStart)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return (float64(last+1) + frac*span) / float64(n) * 100
}
