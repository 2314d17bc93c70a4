// Package app implements the interactive sync editor: a bubbletea
// model that samples the transport clock once per frame and feeds it
// through the timing core for rendering and scrubbing.
package app

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/google/uuid"

	"github.com/littletheworld/LyrPro/internal/audio"
	"github.com/littletheworld/LyrPro/internal/config"
	"github.com/littletheworld/LyrPro/internal/logging"
	"github.com/littletheworld/LyrPro/internal/lrc"
	"github.com/littletheworld/LyrPro/internal/project"
	"github.com/littletheworld/LyrPro/internal/store"
	"github.com/littletheworld/LyrPro/internal/timing"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode tracks what keyboard input currently means.
type Mode int

const (
	ModeSync  Mode = iota // scrub and commit timestamps
	ModeLabel             // editing the selected line's label
)

// Model is the root bubbletea model for the sync editor.
type Model struct {
	cfg   *config.Config
	log   *logging.Logger
	store *store.Store

	proj      *project.Project
	transport *audio.Transport

	editor   *timing.Editor
	selector timing.Selector

	// Derived projections, recomputed on dependency change.
	effEnds   map[string]float64
	selection timing.Selection
	now       float64

	// Scrub state
	scrubPos int

	// UI state
	mode       Mode
	labelInput textinput.Model
	width      int
	height     int
	scroll     int
	autoScroll bool

	statusText     string
	errorMessage   string
	errorTransient bool
	dirty          bool
}

// New builds the editor model for one project.
func New(cfg *config.Config, log *logging.Logger, st *store.Store, p *project.Project, tr *audio.Transport) Model {
	p.Normalize()

	ti := textinput.New()
	ti.Placeholder = "Label (e.g. Verse 1)"
	ti.CharLimit = 64
	ti.Width = 24

	return Model{
		cfg:        cfg,
		log:        log,
		store:      st,
		proj:       p,
		transport:  tr,
		editor:     timing.NewEditor(p),
		effEnds:    timing.ResolveEffectiveEnds(p.Lines),
		labelInput: ti,
		autoScroll: true,
		statusText: "Paused",
	}
}

// Init schedules the first frame.
func (m Model) Init() tea.Cmd {
	return m.frameTickCmd()
}

// frameTickCmd paces the selector at the configured frame rate.
func (m Model) frameTickCmd() tea.Cmd {
	fps := 30
	if m.cfg != nil && m.cfg.FrameRate > 0 {
		fps = m.cfg.FrameRate
	}
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return FrameTickMsg{}
	})
}

// saveCmd persists the project. Checkpoints fire on line commits and
// structural edits, not every scrub.
func saveCmd(st *store.Store, p *project.Project, log *logging.Logger) tea.Cmd {
	return func() tea.Msg {
		if st == nil {
			return SavedMsg{}
		}
		err := st.Save(p)
		if err != nil && log != nil {
			log.Errorw("autosave failed", "project", p.ID, "error", err)
		}
		return SavedMsg{Err: err}
	}
}

// copyLRCCmd renders the project as LRC and puts it on the clipboard.
func copyLRCCmd(p *project.Project) tea.Cmd {
	return func() tea.Msg {
		var w lrc.Writer
		return CopiedMsg{Err: clipboard.WriteAll(w.Render(p))}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FrameTickMsg:
		m.sampleFrame()
		return m, m.frameTickCmd()

	case SavedMsg:
		if msg.Err != nil {
			m.errorMessage = "autosave failed: " + msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.dirty = false
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.errorMessage = "clipboard: " + msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "LRC copied to clipboard"
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// sampleFrame pulls the playback position and recomputes the selection.
// The selector is a pure function of (time, lines, effective ends); the
// focus and anchor ids are the only state carried across frames.
func (m *Model) sampleFrame() {
	m.now = m.transport.Now()
	m.selection = m.selector.Select(m.now, m.proj.Lines, m.effEnds)
	if m.transport.Playing() {
		m.statusText = "Playing"
	} else {
		m.statusText = "Paused"
	}
	if m.autoScroll {
		m.scrollToAnchor()
	}
}

// refreshEffectiveEnds recomputes the overlap projection. Called after
// every timestamp mutation; never patched incrementally.
func (m *Model) refreshEffectiveEnds() {
	m.effEnds = timing.ResolveEffectiveEnds(m.proj.Lines)
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeLabel {
		return m.handleLabelKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Sequence(saveCmd(m.store, m.proj, m.log), tea.Quit)

	case KeySpace:
		m.transport.Toggle()
		return m, nil

	case KeyLeft, KeyScrubBack:
		return m.scrubBy(-m.scrubStep()), nil

	case KeyRight, KeyScrubFwd:
		return m.scrubBy(m.scrubStep()), nil

	case KeyEnter:
		return m.commit()

	case KeyTab:
		m.cycleTarget()
		return m, nil

	case KeyNextLine:
		m.selectLine(m.editor.LineIdx + 1)
		return m, nil

	case KeyPrevLine:
		m.selectLine(m.editor.LineIdx - 1)
		return m, nil

	case KeyUp:
		m.autoScroll = false
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case KeyDown:
		m.scroll++
		if max := m.maxScroll(); m.scroll >= max {
			m.scroll = max
			m.autoScroll = true
		}
		return m, nil

	case KeyGroup:
		return m.toggleGroup()

	case KeySinger:
		return m.toggleSinger()

	case KeyResetLine:
		return m.resetLine()

	case KeyEditLabel:
		if l := m.editor.Line(); l != nil {
			m.mode = ModeLabel
			m.labelInput.SetValue(l.Label)
			m.labelInput.Focus()
		}
		return m, nil

	case KeyCopyLRC:
		return m, copyLRCCmd(m.proj)
	}

	return m, nil
}

// handleLabelKey routes keys to the label input until commit or cancel.
func (m Model) handleLabelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		if l := m.editor.Line(); l != nil {
			l.Label = m.labelInput.Value()
		}
		m.mode = ModeSync
		m.labelInput.Blur()
		return m, saveCmd(m.store, m.proj, m.log)

	case KeyEsc:
		m.mode = ModeSync
		m.labelInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m Model) scrubStep() int {
	if m.cfg != nil && m.cfg.ScrubStep > 0 {
		return m.cfg.ScrubStep
	}
	return 5
}

// scrubBy moves the scrub position and tags the character under it with
// the current playback time.
func (m Model) scrubBy(delta int) Model {
	m.scrubPos += delta
	if m.scrubPos < 0 {
		m.scrubPos = 0
	}
	if m.scrubPos > timing.ScrubScale {
		m.scrubPos = timing.ScrubScale
	}
	m.editor.Scrub(m.scrubPos, m.transport.Now())
	m.refreshEffectiveEnds()
	m.dirty = true
	return m
}

// commit releases the scrub at the cursor: the authoritative write,
// possibly advancing target or line, plus an autosave checkpoint.
func (m Model) commit() (tea.Model, tea.Cmd) {
	seek := m.editor.Commit(m.editor.Cursor, m.transport.Now())
	if seek != nil {
		m.transport.SeekTo(*seek)
	}
	m.scrubPos = m.positionForCursor()
	m.refreshEffectiveEnds()
	m.dirty = true
	return m, saveCmd(m.store, m.proj, m.log)
}

// cycleTarget rotates main -> ad-lib 0 -> ... -> main on the current line.
func (m *Model) cycleTarget() {
	l := m.editor.Line()
	if l == nil || len(l.AdLibs) == 0 {
		return
	}
	next := m.editor.Target + 1
	if next >= len(l.AdLibs) {
		next = timing.TargetMain
	}
	if seek := m.editor.SelectTarget(next); seek != nil {
		m.transport.SeekTo(*seek)
	}
	m.scrubPos = m.positionForCursor()
}

func (m *Model) selectLine(idx int) {
	if seek := m.editor.SelectLine(idx); seek != nil {
		m.transport.SeekTo(*seek)
	}
	m.scrubPos = m.positionForCursor()
	m.autoScroll = true
}

// toggleGroup marks the selected line simultaneous with its predecessor,
// or dissolves its group membership.
func (m Model) toggleGroup() (tea.Model, tea.Cmd) {
	l := m.editor.Line()
	if l == nil {
		return m, nil
	}
	if l.GroupID != "" {
		l.GroupID = ""
	} else if m.editor.LineIdx > 0 {
		prev := &m.proj.Lines[m.editor.LineIdx-1]
		if prev.GroupID == "" {
			prev.GroupID = uuid.NewString()
		}
		l.GroupID = prev.GroupID
	}
	m.dirty = true
	return m, saveCmd(m.store, m.proj, m.log)
}

func (m Model) toggleSinger() (tea.Model, tea.Cmd) {
	l := m.editor.Line()
	if l == nil {
		return m, nil
	}
	if l.Singer == project.SingerTwo {
		l.Singer = project.SingerOne
	} else {
		l.Singer = project.SingerTwo
	}
	m.dirty = true
	return m, saveCmd(m.store, m.proj, m.log)
}

func (m Model) resetLine() (tea.Model, tea.Cmd) {
	if seek := m.editor.ResetLine(m.editor.LineIdx); seek != nil {
		m.transport.SeekTo(*seek)
	}
	m.scrubPos = 0
	m.refreshEffectiveEnds()
	m.dirty = true
	return m, saveCmd(m.store, m.proj, m.log)
}

// positionForCursor maps the editor cursor back onto the scrub scale.
func (m Model) positionForCursor() int {
	l := m.editor.Line()
	if l == nil {
		return 0
	}
	chars := l.Chars
	if m.editor.Target != timing.TargetMain && m.editor.Target < len(l.AdLibs) {
		chars = l.AdLibs[m.editor.Target].Chars
	}
	if len(chars) <= 1 {
		return 0
	}
	return m.editor.Cursor * timing.ScrubScale / (len(chars) - 1)
}
