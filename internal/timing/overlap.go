package timing

import (
	"math"

	"github.com/littletheworld/LyrPro/internal/project"
)

// ResolveEffectiveEnds computes, per line id, an end time that accounts
// for temporal overlap with other lines, so a duet line is not marked
// done while its partner is still being sung. Overlaps merge
// transitively: the relaxation repeats full passes until one makes no
// change, which a single pass cannot guarantee for chained overlaps
// (A overlaps B, B overlaps C, A and C disjoint).
//
// Lines with no timing data are absent from the result; they have no
// effective end until synced. The result is a derived projection —
// recompute it whenever any line's timestamps change.
func ResolveEffectiveEnds(lines []project.Line) map[string]float64 {
	type span struct {
		id         string
		start, end float64 // static interval used for the overlap test
	}

	eff := make(map[string]float64)
	var spans []span
	for i := range lines {
		l := &lines[i]
		end := LineEndTime(l)
		if math.IsInf(end, -1) {
			continue
		}
		spans = append(spans, span{id: l.ID, start: LineStartTime(l), end: end})
		eff[l.ID] = end
	}

	// Each pass can only propagate a max one hop further along an
	// overlap chain, so the line count bounds the passes needed.
	for pass := 0; pass < len(spans); pass++ {
		changed := false
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				a, b := spans[i], spans[j]
				if a.start < b.end && a.end > b.start {
					if m := max(eff[a.id], eff[b.id]); m != eff[a.id] || m != eff[b.id] {
						eff[a.id] = m
						eff[b.id] = m
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	return eff
}
