package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/littletheworld/LyrPro/internal/audio"
	"github.com/littletheworld/LyrPro/internal/config"
	"github.com/littletheworld/LyrPro/internal/project"
	"github.com/littletheworld/LyrPro/internal/timing"
)

func testModel(lyrics string) Model {
	p := project.New("Test Song")
	p.Lines = project.ParseLyrics(lyrics)
	tr := audio.NewTransport(120)
	return New(config.Default(), nil, nil, p, tr)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(s)}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := testModel("hello\nworld")
	if m.editor.LineIdx != 0 || m.editor.Target != timing.TargetMain {
		t.Error("new model should start on line 0, main track")
	}
	if !m.autoScroll {
		t.Error("new model should auto-scroll")
	}
	if m.mode != ModeSync {
		t.Error("new model should be in sync mode")
	}
	if m.transport.Playing() {
		t.Error("transport should start paused")
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m := testModel("hello")
	updated, _ := m.Update(key(" "))
	model := updated.(Model)
	if !model.transport.Playing() {
		t.Error("space should start playback")
	}
	updated, _ = model.Update(key(" "))
	model = updated.(Model)
	if model.transport.Playing() {
		t.Error("space should pause playback")
	}
}

func TestScrubAssignsTimestamp(t *testing.T) {
	m := testModel("abc")
	m.transport.SeekTo(7.5)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	model := updated.(Model)

	if model.scrubPos != model.cfg.ScrubStep {
		t.Errorf("scrubPos = %d, want %d", model.scrubPos, model.cfg.ScrubStep)
	}
	idx := model.editor.Cursor
	st := model.proj.Lines[0].Time[idx]
	if st == nil || *st != 7.5 {
		t.Errorf("time[%d] = %v, want 7.5", idx, st)
	}
	if !model.dirty {
		t.Error("scrub should mark the project dirty")
	}
}

func TestScrubClampsAtScaleEnds(t *testing.T) {
	m := testModel("ab")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model := updated.(Model)
	if model.scrubPos != 0 {
		t.Errorf("scrubPos = %d, want clamp at 0", model.scrubPos)
	}
	for i := 0; i < 500; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
		model = updated.(Model)
	}
	if model.scrubPos != timing.ScrubScale {
		t.Errorf("scrubPos = %d, want clamp at %d", model.scrubPos, timing.ScrubScale)
	}
}

func TestCommitAdvancesLineAndSaves(t *testing.T) {
	m := testModel("ab\ncd")
	m.transport.SeekTo(1.0)
	m.editor.ScrubIndex(0, 1.0)
	m.editor.ScrubIndex(1, 2.0)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	if model.editor.LineIdx != 1 {
		t.Errorf("line = %d, want 1 after committing the last char", model.editor.LineIdx)
	}
	if cmd == nil {
		t.Error("commit should schedule an autosave checkpoint")
	}
	if len(model.effEnds) == 0 {
		t.Error("effective ends should be recomputed after commit")
	}
}

func TestGroupToggle(t *testing.T) {
	m := testModel("one\ntwo")
	m.selectLine(1)

	updated, _ := m.Update(key("g"))
	model := updated.(Model)
	if model.proj.Lines[0].GroupID == "" ||
		model.proj.Lines[0].GroupID != model.proj.Lines[1].GroupID {
		t.Fatal("group toggle should link the line with its predecessor")
	}

	updated, _ = model.Update(key("g"))
	model = updated.(Model)
	if model.proj.Lines[1].GroupID != "" {
		t.Error("second toggle should dissolve membership")
	}
}

func TestSingerToggle(t *testing.T) {
	m := testModel("hello")
	updated, _ := m.Update(key("s"))
	model := updated.(Model)
	if model.proj.Lines[0].Singer != project.SingerTwo {
		t.Errorf("singer = %d, want 2", model.proj.Lines[0].Singer)
	}
}

func TestResetLineClearsTimestamps(t *testing.T) {
	m := testModel("ab")
	m.editor.ScrubIndex(0, 5.0)
	m.editor.ScrubIndex(1, 6.0)

	updated, _ := m.Update(key("r"))
	model := updated.(Model)
	for i, st := range model.proj.Lines[0].Time {
		if st != nil {
			t.Errorf("time[%d] = %v, want cleared", i, *st)
		}
	}
	// Seek landed 3 s before the old start, clamped at 0.
	if got := model.transport.Now(); got != 2.0 {
		t.Errorf("playback = %v, want 2.0", got)
	}
}

func TestLabelEditFlow(t *testing.T) {
	m := testModel("hello")
	updated, _ := m.Update(key("e"))
	model := updated.(Model)
	if model.mode != ModeLabel {
		t.Fatal("e should enter label mode")
	}

	for _, r := range "Verse 1" {
		updated, _ = model.Update(key(string(r)))
		model = updated.(Model)
	}
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if model.mode != ModeSync {
		t.Error("enter should leave label mode")
	}
	if got := model.proj.Lines[0].Label; got != "Verse 1" {
		t.Errorf("label = %q, want %q", got, "Verse 1")
	}
}

func TestLabelEditEscCancels(t *testing.T) {
	m := testModel("hello")
	updated, _ := m.Update(key("e"))
	model := updated.(Model)
	updated, _ = model.Update(key("x"))
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(Model)
	if model.mode != ModeSync {
		t.Error("esc should leave label mode")
	}
	if model.proj.Lines[0].Label != "" {
		t.Errorf("label = %q, want unchanged", model.proj.Lines[0].Label)
	}
}

func TestFrameTickRecomputesSelection(t *testing.T) {
	m := testModel("ab")
	m.editor.ScrubIndex(0, 1.0)
	m.editor.ScrubIndex(1, 4.0)
	m.refreshEffectiveEnds()
	m.transport.SeekTo(2.0)

	updated, cmd := m.Update(FrameTickMsg{})
	model := updated.(Model)

	if model.now != 2.0 {
		t.Errorf("now = %v, want sampled 2.0", model.now)
	}
	if !model.selection.Active[model.proj.Lines[0].ID] {
		t.Error("line should be active at t=2")
	}
	if cmd == nil {
		t.Error("frame tick must reschedule itself")
	}
}

func TestSelectLineMovesCursorAndScrub(t *testing.T) {
	m := testModel("abcd\nefgh")
	m.editor.ScrubIndex(3, 9.0)
	m.selectLine(1)
	if m.editor.LineIdx != 1 {
		t.Fatalf("line = %d, want 1", m.editor.LineIdx)
	}
	if m.scrubPos != 0 {
		t.Errorf("scrubPos = %d, want 0 on an unsynced line", m.scrubPos)
	}
}

func TestQuitSavesAndQuits(t *testing.T) {
	m := testModel("hello")
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	m := testModel("hello")
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view = %q before first WindowSizeMsg", got)
	}
}

func TestViewRendersAllSections(t *testing.T) {
	m := testModel("hello world")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model := updated.(Model)
	out := model.View()
	if out == "" {
		t.Fatal("view should render")
	}
	for _, want := range []string{"LYRPRO", "PAUSE", "Commit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
