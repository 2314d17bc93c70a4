package timing

import (
	"testing"

	"github.com/littletheworld/LyrPro/internal/project"
)

func spanLine(start, end float64) project.Line {
	l := project.NewLine([]string{"a", "b"})
	l.Time[0] = f(start)
	l.Time[1] = f(end)
	return l
}

func TestOverlapDirect(t *testing.T) {
	lines := []project.Line{spanLine(0, 5), spanLine(3, 8)}
	eff := ResolveEffectiveEnds(lines)
	for _, l := range lines {
		if eff[l.ID] != 8 {
			t.Errorf("eff[%s] = %v, want 8", l.ID, eff[l.ID])
		}
	}
}

func TestOverlapTransitiveChain(t *testing.T) {
	// [0,5] and [8,12] don't touch, but [4,9] bridges them: all three
	// must converge on 12.
	lines := []project.Line{spanLine(0, 5), spanLine(4, 9), spanLine(8, 12)}
	eff := ResolveEffectiveEnds(lines)
	for i, l := range lines {
		if eff[l.ID] != 12 {
			t.Errorf("line %d: eff = %v, want 12", i, eff[l.ID])
		}
	}
}

func TestDisjointLinesKeepOwnEnds(t *testing.T) {
	lines := []project.Line{spanLine(0, 2), spanLine(5, 7)}
	eff := ResolveEffectiveEnds(lines)
	if eff[lines[0].ID] != 2 || eff[lines[1].ID] != 7 {
		t.Errorf("eff = %v/%v, want 2/7", eff[lines[0].ID], eff[lines[1].ID])
	}
}

func TestTouchingIntervalsDoNotMerge(t *testing.T) {
	// start(B) == end(A): the strict inequality means no overlap.
	lines := []project.Line{spanLine(0, 5), spanLine(5, 9)}
	eff := ResolveEffectiveEnds(lines)
	if eff[lines[0].ID] != 5 {
		t.Errorf("eff[A] = %v, want 5", eff[lines[0].ID])
	}
}

func TestUnsyncedLinesExcluded(t *testing.T) {
	unsynced := project.NewLine([]string{"a", "b"})
	lines := []project.Line{spanLine(0, 5), unsynced}
	eff := ResolveEffectiveEnds(lines)
	if _, ok := eff[unsynced.ID]; ok {
		t.Error("unsynced line must not appear in the effective-end map")
	}
	if len(eff) != 1 {
		t.Errorf("map size = %d, want 1", len(eff))
	}
}

func TestOverlapEmptyInput(t *testing.T) {
	if eff := ResolveEffectiveEnds(nil); len(eff) != 0 {
		t.Errorf("eff = %v, want empty", eff)
	}
}
