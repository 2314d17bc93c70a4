package timing

import (
	"math"
	"testing"

	"github.com/littletheworld/LyrPro/internal/project"
)

func f(v float64) *float64 { return &v }

func lineWithTimes(times ...*float64) project.Line {
	chars := make([]string, len(times))
	for i := range chars {
		chars[i] = "x"
	}
	l := project.NewLine(chars)
	copy(l.Time, times)
	return l
}

func TestLineStartEndTime(t *testing.T) {
	l := lineWithTimes(f(2.5), nil, f(7.0))
	if got := LineStartTime(&l); got != 2.5 {
		t.Errorf("start = %v, want 2.5", got)
	}
	if got := LineEndTime(&l); got != 7.0 {
		t.Errorf("end = %v, want 7.0", got)
	}
	if got := MainEndTime(&l); got != 7.0 {
		t.Errorf("main end = %v, want 7.0", got)
	}
}

func TestUnsyncedLineSentinels(t *testing.T) {
	l := lineWithTimes(nil, nil)
	if got := LineStartTime(&l); !math.IsInf(got, 1) {
		t.Errorf("start = %v, want +Inf", got)
	}
	if got := LineEndTime(&l); !math.IsInf(got, -1) {
		t.Errorf("end = %v, want -Inf", got)
	}
	// An unsynced start must never count as begun.
	if LineStartTime(&l) <= 1e9 {
		t.Error("unsynced start compared as started")
	}
}

func TestAdLibsExtendLineRange(t *testing.T) {
	l := lineWithTimes(f(5.0), f(6.0))
	a := project.NewAdLib([]string{"o", "h"})
	a.Time[0] = f(1.0)
	a.Time[1] = f(9.0)
	l.AdLibs = append(l.AdLibs, a)

	if got := LineStartTime(&l); got != 1.0 {
		t.Errorf("start = %v, want 1.0", got)
	}
	if got := LineEndTime(&l); got != 9.0 {
		t.Errorf("end = %v, want 9.0", got)
	}
	// Main end ignores ad-libs.
	if got := MainEndTime(&l); got != 6.0 {
		t.Errorf("main end = %v, want 6.0", got)
	}
	if got := AdLibStartTime(&l.AdLibs[0]); got != 1.0 {
		t.Errorf("adlib start = %v, want 1.0", got)
	}
	if got := AdLibEndTime(&l.AdLibs[0]); got != 9.0 {
		t.Errorf("adlib end = %v, want 9.0", got)
	}
}

func TestStartNeverAfterEnd(t *testing.T) {
	l := lineWithTimes(f(3.0), nil, f(1.5), f(8.0))
	start, end := LineStartTime(&l), LineEndTime(&l)
	if start > end {
		t.Errorf("start %v > end %v", start, end)
	}
}

func TestIsPartSynced(t *testing.T) {
	cases := []struct {
		name   string
		chars  []string
		stamps []*float64
		want   bool
	}{
		{"empty track", nil, nil, true},
		{"all synced", []string{"a", "b"}, []*float64{f(1), f(2)}, true},
		{"interior gap tolerated", []string{"a", "b", "c"}, []*float64{f(1), nil, f(3)}, true},
		{"trailing nil", []string{"a", "b"}, []*float64{f(1), nil}, false},
		{"nothing synced", []string{"a"}, []*float64{nil}, false},
		{"length mismatch", []string{"a", "b"}, []*float64{f(1)}, false},
	}
	for _, tc := range cases {
		if got := IsPartSynced(tc.chars, tc.stamps); got != tc.want {
			t.Errorf("%s: IsPartSynced = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsLineSynced(t *testing.T) {
	l := lineWithTimes(f(1), f(2))
	if !IsLineSynced(&l) {
		t.Error("fully synced main should be synced")
	}
	a := project.NewAdLib([]string{"x"})
	l.AdLibs = append(l.AdLibs, a)
	if IsLineSynced(&l) {
		t.Error("unsynced ad-lib should block line sync")
	}
	l.AdLibs[0].Time[0] = f(3)
	if !IsLineSynced(&l) {
		t.Error("line with synced ad-lib should be synced")
	}
}
