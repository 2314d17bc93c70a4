// Package lrc renders synced projects as LRC lyric files: line-level
// [mm:ss.xx] tags, optionally with enhanced <mm:ss.xx> word tags
// derived from the per-character timestamps.
package lrc

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/littletheworld/LyrPro/internal/project"
	"github.com/littletheworld/LyrPro/internal/timing"
)

// Writer renders LRC text from a project.
type Writer struct {
	// Enhanced emits inline word timestamps in addition to line tags.
	Enhanced bool
}

// Render returns the LRC document for the project. Lines without any
// timing data are skipped; ad-lib parts with timing render as their own
// tagged lines.
func (w *Writer) Render(p *project.Project) string {
	var sb strings.Builder

	if p.Title != "" {
		sb.WriteString(fmt.Sprintf("[ti:%s]\n", p.Title))
	}
	if p.Artist != "" {
		sb.WriteString(fmt.Sprintf("[ar:%s]\n", p.Artist))
	}
	sb.WriteString("[re:LyrPro]\n\n")

	for i := range p.Lines {
		l := &p.Lines[i]
		if start := timing.LineStartTime(l); !math.IsInf(start, 1) {
			w.renderTrack(&sb, mainStart(l), l.Chars, l.Time)
		}
		for j := range l.AdLibs {
			a := &l.AdLibs[j]
			start := timing.AdLibStartTime(a)
			if math.IsInf(start, 1) {
				continue
			}
			w.renderTrack(&sb, start, a.Chars, a.Time)
		}
	}
	return sb.String()
}

// WriteFile renders the project to path, creating parent directories.
func (w *Writer) WriteFile(p *project.Project, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(w.Render(p)), 0o644); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	return nil
}

// renderTrack writes one tagged LRC line for a character track.
func (w *Writer) renderTrack(sb *strings.Builder, start float64, chars []string, stamps []*float64) {
	if len(chars) == 0 {
		return
	}
	sb.WriteString("[" + Timestamp(start) + "]")
	if !w.Enhanced {
		for _, c := range chars {
			sb.WriteString(c)
		}
		sb.WriteString("\n")
		return
	}

	// Word boundaries get inline tags from the first defined stamp at or
	// after each word start.
	wordStart := true
	for i, c := range chars {
		if c == " " {
			sb.WriteString(c)
			wordStart = true
			continue
		}
		if wordStart {
			if t := stampAtOrAfter(stamps, i); t != nil {
				sb.WriteString("<" + Timestamp(*t) + ">")
			}
			wordStart = false
		}
		sb.WriteString(c)
	}
	sb.WriteString("\n")
}

// stampAtOrAfter finds the first defined timestamp from index i on.
func stampAtOrAfter(stamps []*float64, i int) *float64 {
	for ; i < len(stamps); i++ {
		if stamps[i] != nil {
			return stamps[i]
		}
	}
	return nil
}

// mainStart is the first defined main-track stamp, falling back to the
// line start when the main track itself is untimed.
func mainStart(l *project.Line) float64 {
	for _, s := range l.Time {
		if s != nil {
			return *s
		}
	}
	return timing.LineStartTime(l)
}

// Timestamp formats seconds as mm:ss.xx (centisecond precision).
func Timestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	mins := int(sec) / 60
	rem := sec - float64(mins*60)
	return fmt.Sprintf("%02d:%05.2f", mins, rem)
}
