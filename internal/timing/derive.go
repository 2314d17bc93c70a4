// Package timing implements the synchronization core: timestamp
// derivations over time-tagged text, the incremental scrub editor, the
// overlap resolver for simultaneous lines, and the playback progress
// selector.
package timing

import (
	"math"

	"github.com/littletheworld/LyrPro/internal/project"
)

// Unsynced tracks are reported with infinity sentinels rather than nil
// or NaN: +Inf for a missing start, -Inf for a missing end. The ordering
// of infinities against finite times is what keeps an unsynced line from
// ever comparing as active.

// trackMin returns the smallest defined timestamp in a track, or +Inf.
func trackMin(stamps []*float64) float64 {
	t := math.Inf(1)
	for _, s := range stamps {
		if s != nil && *s < t {
			t = *s
		}
	}
	return t
}

// trackMax returns the largest defined timestamp in a track, or -Inf.
func trackMax(stamps []*float64) float64 {
	t := math.Inf(-1)
	for _, s := range stamps {
		if s != nil && *s > t {
			t = *s
		}
	}
	return t
}

// LineStartTime is the earliest defined timestamp across the main track
// and all ad-libs, or +Inf when the line has no timing data.
func LineStartTime(l *project.Line) float64 {
	t := trackMin(l.Time)
	for i := range l.AdLibs {
		if at := trackMin(l.AdLibs[i].Time); at < t {
			t = at
		}
	}
	return t
}

// LineEndTime is the latest defined timestamp across the main track and
// all ad-libs, or -Inf when the line has no timing data.
func LineEndTime(l *project.Line) float64 {
	t := trackMax(l.Time)
	for i := range l.AdLibs {
		if at := trackMax(l.AdLibs[i].Time); at > t {
			t = at
		}
	}
	return t
}

// MainEndTime is the latest defined timestamp in the main track only,
// or -Inf.
func MainEndTime(l *project.Line) float64 {
	return trackMax(l.Time)
}

// AdLibStartTime is the earliest defined timestamp in one ad-lib track,
// or +Inf.
func AdLibStartTime(a *project.AdLibPart) float64 {
	return trackMin(a.Time)
}

// AdLibEndTime is the latest defined timestamp in one ad-lib track,
// or -Inf.
func AdLibEndTime(a *project.AdLibPart) float64 {
	return trackMax(a.Time)
}

// IsPartSynced reports whether a track is synced through to its final
// character. Interior gaps are tolerated; only trailing completeness
// matters. An empty track is trivially synced.
func IsPartSynced(chars []string, stamps []*float64) bool {
	if len(chars) == 0 {
		return true
	}
	if len(stamps) != len(chars) {
		return false
	}
	return stamps[len(chars)-1] != nil
}

// IsLineSynced reports whether the main track and every ad-lib track of
// the line are fully synced.
func IsLineSynced(l *project.Line) bool {
	if !IsPartSynced(l.Chars, l.Time) {
		return false
	}
	for i := range l.AdLibs {
		if !IsPartSynced(l.AdLibs[i].Chars, l.AdLibs[i].Time) {
			return false
		}
	}
	return true
}
