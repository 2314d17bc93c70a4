package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/littletheworld/LyrPro/internal/timing"
	"github.com/littletheworld/LyrPro/internal/ui"
)

// View renders the full editor.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderLyricPanel())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderSyncPanel())
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("LYRPRO")
	song := m.proj.Title
	if m.proj.Artist != "" {
		song += " — " + m.proj.Artist
	}
	return title + ui.DimStyle.Render("  "+song)
}

func (m Model) renderStatusBar() string {
	var dot string
	if m.transport.Playing() {
		dot = ui.PlayingDotStyle.Render("● PLAY")
	} else {
		dot = ui.PausedDotStyle.Render("○ PAUSE")
	}

	clock := ui.TimestampStyle.Render(
		fmt.Sprintf("  %s / %s", formatClock(m.now), formatClock(m.transport.Duration())))

	var target string
	if l := m.editor.Line(); l != nil {
		if m.editor.Target == timing.TargetMain {
			target = ui.StatusBadgeStyle.Render("  MAIN")
		} else {
			target = ui.StatusBadgeStyle.Render(fmt.Sprintf("  AD-LIB %d", m.editor.Target+1))
		}
	}

	var mode string
	if m.mode == ModeLabel {
		mode = ui.EditBadgeStyle.Render("  EDIT")
	}

	var dirty string
	if m.dirty {
		dirty = ui.DimStyle.Render("  *")
	}

	return dot + clock + target + mode + dirty + ui.DimStyle.Render("  "+m.statusText)
}

// lyricVisibleLines is the row budget of the lyric panel.
func (m Model) lyricVisibleLines() int {
	if m.height == 0 {
		return 16
	}
	// header(1) + status(1) + dividers(2) + sync panel(4) + error(1) + footer(1)
	reserved := 10
	if v := m.height - reserved; v >= 4 {
		return v
	}
	return 4
}

func (m Model) maxScroll() int {
	total := len(m.proj.Lines)
	visible := m.lyricVisibleLines()
	if total <= visible {
		return 0
	}
	return total - visible
}

// scrollToAnchor keeps the anchor line a third of the way into the
// panel, pinning a duet block's top rather than the focus sub-line.
func (m *Model) scrollToAnchor() {
	anchor := m.selection.AnchorID
	if anchor == "" {
		return
	}
	for i := range m.proj.Lines {
		if m.proj.Lines[i].ID != anchor {
			continue
		}
		target := i - m.lyricVisibleLines()/3
		if target < 0 {
			target = 0
		}
		if max := m.maxScroll(); target > max {
			target = max
		}
		m.scroll = target
		return
	}
}

func (m Model) renderLyricPanel() string {
	visible := m.lyricVisibleLines()
	var rows []string

	if len(m.proj.Lines) == 0 {
		rows = append(rows, ui.DimStyle.Render("  No lyric lines. Import lyrics first."))
	}

	start := m.scroll
	if start > len(m.proj.Lines) {
		start = len(m.proj.Lines)
	}
	end := start + visible
	if end > len(m.proj.Lines) {
		end = len(m.proj.Lines)
	}
	for i := start; i < end; i++ {
		rows = append(rows, truncateToWidth(m.renderLine(i), m.width))
	}
	for len(rows) < visible {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderLine renders one lyric row: selection marker, badges, and the
// per-character fill of the main track plus any ad-libs.
func (m Model) renderLine(i int) string {
	l := &m.proj.Lines[i]
	active := m.selection.Active[l.ID]
	eff, hasEff := m.effEnds[l.ID]
	complete := hasEff && m.now >= eff

	marker := "  "
	if i == m.editor.LineIdx {
		marker = ui.SelectedStyle.Render("▸ ")
	}

	var badges string
	if l.Label != "" {
		badges += ui.LabelBadgeStyle.Render("["+l.Label+"] ")
	}
	if l.GroupID != "" {
		badges += ui.GroupMarkStyle.Render("║ ")
	}

	indent := ""
	if l.Singer == 2 && m.width > 40 {
		indent = strings.Repeat(" ", m.width/4)
	}

	override := m.fillBoundary(i)
	text := m.renderTrack(l.Chars, l.Time, active, complete, override, i == m.editor.LineIdx && m.editor.Target == timing.TargetMain)

	for j := range l.AdLibs {
		a := &l.AdLibs[j]
		adActive := active
		adText := m.renderTrack(a.Chars, a.Time, adActive, complete, override, i == m.editor.LineIdx && m.editor.Target == j)
		text += ui.AdLibStyle.Render(" (") + adText + ui.AdLibStyle.Render(")")
	}

	return indent + marker + badges + text
}

// renderTrack splits a track's characters at the fractional fill
// boundary computed by the progress selector.
func (m Model) renderTrack(chars []string, stamps []*float64, active, complete bool, override *float64, isTarget bool) string {
	if len(chars) == 0 {
		return ""
	}
	joined := strings.Join(chars, "")

	if !active && !complete {
		if isTarget {
			return ui.ActiveLineStyle.Render(joined)
		}
		return ui.DimStyle.Render(joined)
	}

	pct := timing.FillPercent(chars, stamps, m.now, override, complete)
	filled := int(math.Floor(pct / 100 * float64(len(chars))))
	if filled > len(chars) {
		filled = len(chars)
	}

	head := strings.Join(chars[:filled], "")
	tail := strings.Join(chars[filled:], "")
	rest := ui.UnfilledStyle
	if active {
		rest = ui.ActiveLineStyle
	}
	return ui.FilledStyle.Render(head) + rest.Render(tail)
}

// fillBoundary is the end-time override the trailing fill segment
// animates toward: the next line's start when one is synced, else this
// line's own effective end.
func (m Model) fillBoundary(i int) *float64 {
	for j := i + 1; j < len(m.proj.Lines); j++ {
		start := timing.LineStartTime(&m.proj.Lines[j])
		if !math.IsInf(start, 1) {
			return &start
		}
	}
	if eff, ok := m.effEnds[m.proj.Lines[i].ID]; ok {
		return &eff
	}
	return nil
}

// renderSyncPanel shows the active target character by character with
// sync state, the scrub ruler, and in label mode the text input.
func (m Model) renderSyncPanel() string {
	if m.mode == ModeLabel {
		return ui.EditBadgeStyle.Render("  label: ") + m.labelInput.View() + "\n\n\n"
	}

	var rows []string

	chars, stamps := m.targetTrack()
	if len(chars) == 0 {
		rows = append(rows, ui.DimStyle.Render("  (empty target — tab to switch, j/k to move)"))
	} else {
		var sb strings.Builder
		sb.WriteString("  ")
		for i, c := range chars {
			switch {
			case i == m.editor.Cursor:
				sb.WriteString(ui.CursorStyle.Render(c))
			case stamps[i] != nil:
				sb.WriteString(ui.SyncedMarkStyle.Render(c))
			default:
				sb.WriteString(ui.DimStyle.Render(c))
			}
		}
		rows = append(rows, truncateToWidth(sb.String(), m.width))
	}

	rows = append(rows, "  "+m.renderRuler())

	var stamp string
	if _, stamps := m.targetTrack(); m.editor.Cursor < len(stamps) && stamps[m.editor.Cursor] != nil {
		stamp = "cursor @ " + formatClock(*stamps[m.editor.Cursor])
	} else {
		stamp = "cursor unsynced"
	}
	rows = append(rows, ui.TimestampStyle.Render("  "+stamp))

	return strings.Join(rows, "\n")
}

// renderRuler draws the scrub position over the fixed 0..1000 scale.
func (m Model) renderRuler() string {
	barLen := m.width - 6
	if barLen < 10 {
		barLen = 10
	}
	if barLen > 60 {
		barLen = 60
	}
	head := m.scrubPos * (barLen - 1) / timing.ScrubScale
	var sb strings.Builder
	for i := 0; i < barLen; i++ {
		if i == head {
			sb.WriteString(ui.RulerHeadStyle.Render("┃"))
		} else {
			sb.WriteString(ui.RulerStyle.Render("─"))
		}
	}
	return sb.String()
}

func (m Model) targetTrack() ([]string, []*float64) {
	l := m.editor.Line()
	if l == nil {
		return nil, nil
	}
	if m.editor.Target != timing.TargetMain && m.editor.Target < len(l.AdLibs) {
		return l.AdLibs[m.editor.Target].Chars, l.AdLibs[m.editor.Target].Time
	}
	return l.Chars, l.Time
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Play"))
	parts = append(parts, ui.FooterKeyStyle.Render("←→")+ui.FooterDescStyle.Render(" Scrub"))
	parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Commit"))
	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Target"))
	parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Line"))
	parts = append(parts, ui.FooterKeyStyle.Render("g")+ui.FooterDescStyle.Render(" Group"))
	parts = append(parts, ui.FooterKeyStyle.Render("s")+ui.FooterDescStyle.Render(" Singer"))
	parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Reset"))
	parts = append(parts, ui.FooterKeyStyle.Render("e")+ui.FooterDescStyle.Render(" Label"))
	parts = append(parts, ui.FooterKeyStyle.Render("y")+ui.FooterDescStyle.Render(" LRC"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(parts, "  ")
}

// Helpers

func formatClock(sec float64) string {
	if sec < 0 || math.IsInf(sec, 0) || math.IsNaN(sec) {
		sec = 0
	}
	mins := int(sec) / 60
	rem := sec - float64(mins*60)
	return fmt.Sprintf("%02d:%05.2f", mins, rem)
}

func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
