// Package tui is the terminal presentation adapter. It observes engine
// snapshots and invokes engine operations; it holds no playback state of its
// own.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-fingerpick/sequencer"
	"go-fingerpick/theme"
	"go-fingerpick/widgets"
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	boardTop int // first row of the board within the view
}

type Model struct {
	Engine *sequencer.Engine
	Theme  *theme.Theme

	board    *widgets.Pedalboard
	bounds   *layoutBounds
	heldID   string // button held down with the mouse
	quitting bool
}

type UpdateMsg struct{}

func NewModel(engine *sequencer.Engine, th *theme.Theme) Model {
	return Model{
		Engine: engine,
		Theme:  th,
		board:  widgets.New(boardRows()),
		bounds: &layoutBounds{},
	}
}

func boardRows() []widgets.Row {
	chords := make([]widgets.Button, sequencer.NumChords)
	for i := range chords {
		chords[i] = widgets.Button{
			ID:    fmt.Sprintf("chord:%d", i),
			Label: sequencer.Chord(i).String(),
		}
	}
	patterns := make([]widgets.Button, sequencer.NumPatterns)
	for i := range patterns {
		patterns[i] = widgets.Button{
			ID:    fmt.Sprintf("pattern:%d", i),
			Label: sequencer.Pattern(i).String(),
		}
	}
	return []widgets.Row{
		{Title: "chords", Buttons: chords},
		{Title: "patterns", Buttons: patterns},
		{Title: "transport", Buttons: []widgets.Button{
			{ID: "play", Label: "play/stop"},
			{ID: "tempo:scrub-down", Label: "◀◀ tempo"},
			{ID: "tempo:down", Label: "−"},
			{ID: "tempo:up", Label: "+"},
			{ID: "tempo:scrub-up", Label: "tempo ▶▶"},
			{ID: "swing:scrub-down", Label: "◀◀ swing"},
			{ID: "swing:down", Label: "−"},
			{ID: "swing:up", Label: "+"},
			{ID: "swing:scrub-up", Label: "swing ▶▶"},
		}},
	}
}

// ListenForUpdates resubscribes to engine change notifications.
func ListenForUpdates(engine *sequencer.Engine) tea.Cmd {
	return func() tea.Msg {
		<-engine.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.Engine.Snapshot()

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Engine.Stop()
		return m, tea.Quit

	case " ", "p":
		m.Engine.TogglePlayback()

	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.Engine.SelectChord(sequencer.Chord(key[0] - '1'))

	case "z", "x", "c", "v":
		m.Engine.SelectPattern(patternForKey(key))

	case "+", "=":
		m.Engine.AdjustTempo(1)
	case "-", "_":
		m.Engine.AdjustTempo(-1)

	case ",":
		m.Engine.AdjustSwing(-0.05)
	case ".":
		m.Engine.AdjustSwing(0.05)
	case "enter":
		m.Engine.CommitSwing()

	// Scrub keys toggle: terminals report no key releases, so a second
	// press stands in for letting go of the pedal.
	case "[":
		m.toggleTempoScrub(snap, -1)
	case "]":
		m.toggleTempoScrub(snap, +1)
	case "{":
		m.toggleSwingScrub(snap, -1)
	case "}":
		m.toggleSwingScrub(snap, +1)
	case "esc":
		m.Engine.StopTempoScrub()
		m.Engine.StopSwingScrub()
	}

	return m, nil
}

func (m Model) toggleTempoScrub(snap sequencer.Snapshot, direction int) {
	if snap.TempoScrub == direction {
		m.Engine.StopTempoScrub()
	} else {
		m.Engine.StartTempoScrub(direction)
	}
}

func (m Model) toggleSwingScrub(snap sequencer.Snapshot, direction int) {
	if snap.SwingScrub == direction {
		m.Engine.StopSwingScrub()
	} else {
		m.Engine.StartSwingScrub(direction)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		id, ok := m.board.HitTest(msg.X, msg.Y-m.bounds.boardTop)
		if !ok {
			return
		}
		m.heldID = id
		m.pressButton(id)

	case tea.MouseActionRelease:
		m.releaseButton(m.heldID)
		m.heldID = ""
	}
}

func (m *Model) pressButton(id string) {
	switch {
	case id == "play":
		m.Engine.TogglePlayback()

	case strings.HasPrefix(id, "chord:"):
		m.Engine.SelectChord(sequencer.Chord(id[len("chord:")] - '0'))

	case strings.HasPrefix(id, "pattern:"):
		m.Engine.SelectPattern(sequencer.Pattern(id[len("pattern:")] - '0'))

	case id == "tempo:down":
		m.Engine.AdjustTempo(-1)
	case id == "tempo:up":
		m.Engine.AdjustTempo(1)
	case id == "swing:down":
		m.Engine.AdjustSwing(-0.05)
	case id == "swing:up":
		m.Engine.AdjustSwing(0.05)

	// Held pedals: scrub runs from mouse press to release.
	case id == "tempo:scrub-down":
		m.Engine.StartTempoScrub(-1)
	case id == "tempo:scrub-up":
		m.Engine.StartTempoScrub(+1)
	case id == "swing:scrub-down":
		m.Engine.StartSwingScrub(-1)
	case id == "swing:scrub-up":
		m.Engine.StartSwingScrub(+1)
	}
}

func (m *Model) releaseButton(id string) {
	switch id {
	case "tempo:scrub-down", "tempo:scrub-up":
		m.Engine.StopTempoScrub()
	case "swing:scrub-down", "swing:scrub-up":
		m.Engine.StopSwingScrub()
	case "swing:down", "swing:up":
		m.Engine.CommitSwing()
	}
}

func patternForKey(key string) sequencer.Pattern {
	switch key {
	case "x":
		return sequencer.PatternAlternate
	case "c":
		return sequencer.PatternRolling
	case "v":
		return sequencer.PatternArpeggio
	default:
		return sequencer.PatternTravis
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := "STOP"
	if snap.Playing {
		playState = "PLAY"
	}

	swing := fmt.Sprintf("swing %.2f", snap.Swing)
	if snap.PendingSwing != snap.Swing {
		swing += fmt.Sprintf(" → %.2f", snap.PendingSwing)
	}

	header := headerStyle.Render(fmt.Sprintf(
		"go-fingerpick  %s  %3.0fbpm  %s  %s", playState, snap.Tempo, swing, m.stepStrip(snap)))

	board := m.board.Render(m.Theme, func(id string) widgets.ButtonState {
		return buttonState(id, snap)
	})

	help := dimStyle.Render("1-8:chord  zxcv:pattern  space:play  +/-:tempo  ,/.:swing  enter:commit  [ ] { }:scrub  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	m.bounds.boardTop = 2 + lipgloss.Height(header)
	out.WriteString(board)
	out.WriteString("\n")
	out.WriteString(help)

	return out.String()
}

// stepStrip renders the 8-step position indicator.
func (m Model) stepStrip(snap sequencer.Snapshot) string {
	sym := m.Theme.Symbols
	var strip strings.Builder
	for i := 0; i < sequencer.StepCount; i++ {
		switch {
		case snap.Playing && i == snap.Step:
			strip.WriteRune(sym.StepPlayhead)
		case i == 0:
			strip.WriteRune(sym.StepDownbeat)
		default:
			strip.WriteRune(sym.StepEmpty)
		}
		if i < sequencer.StepCount-1 {
			strip.WriteRune(' ')
		}
	}
	return strip.String()
}

func buttonState(id string, snap sequencer.Snapshot) widgets.ButtonState {
	switch {
	case strings.HasPrefix(id, "chord:"):
		c := sequencer.Chord(id[len("chord:")] - '0')
		if c == snap.Chord {
			return widgets.StateActive
		}
		if c == snap.NextChord {
			return widgets.StatePending
		}

	case strings.HasPrefix(id, "pattern:"):
		p := sequencer.Pattern(id[len("pattern:")] - '0')
		if p == snap.Pattern {
			return widgets.StateActive
		}
		if p == snap.NextPattern {
			return widgets.StatePending
		}

	case id == "play":
		if snap.Playing {
			return widgets.StateActive
		}

	case id == "tempo:scrub-down":
		if snap.TempoScrub < 0 {
			return widgets.StateHeld
		}
	case id == "tempo:scrub-up":
		if snap.TempoScrub > 0 {
			return widgets.StateHeld
		}
	case id == "swing:scrub-down":
		if snap.SwingScrub < 0 {
			return widgets.StateHeld
		}
	case id == "swing:scrub-up":
		if snap.SwingScrub > 0 {
			return widgets.StateHeld
		}
	}
	return widgets.StateIdle
}
