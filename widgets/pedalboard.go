// Package widgets renders the pedalboard: rows of large labeled buttons the
// TUI maps mouse presses and releases onto, standing in for footswitches.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-fingerpick/theme"
)

// ButtonState drives a button's styling.
type ButtonState int

const (
	StateIdle ButtonState = iota
	StateActive
	StatePending // latched, lands on the next downbeat
	StateHeld    // scrub in progress
)

// Button is a single pedal.
type Button struct {
	ID    string
	Label string
}

// Row is a titled group of pedals.
type Row struct {
	Title   string
	Buttons []Button
}

type region struct {
	id         string
	x, y, w, h int
}

// Pedalboard renders rows of buttons and maps coordinates back to button
// IDs. Layout is recomputed on every Render; HitTest answers against the
// most recent one.
type Pedalboard struct {
	rows    []Row
	regions []region
}

func New(rows []Row) *Pedalboard {
	return &Pedalboard{rows: rows}
}

const (
	buttonGap    = 1
	buttonHeight = 3 // bordered single-line label
)

// Render draws the board. state is consulted per button ID.
func (p *Pedalboard) Render(th *theme.Theme, state func(id string) ButtonState) string {
	p.regions = p.regions[:0]

	titleStyle := lipgloss.NewStyle().Foreground(th.Muted())

	var out strings.Builder
	y := 0
	for ri, row := range p.rows {
		if ri > 0 {
			out.WriteString("\n")
			y++
		}
		if row.Title != "" {
			out.WriteString(titleStyle.Render(row.Title))
			out.WriteString("\n")
			y++
		}

		rendered := make([]string, 0, len(row.Buttons))
		x := 0
		for _, b := range row.Buttons {
			box := p.buttonStyle(th, state(b.ID)).Render(b.Label)
			w := lipgloss.Width(box)
			p.regions = append(p.regions, region{id: b.ID, x: x, y: y, w: w, h: buttonHeight})
			x += w + buttonGap
			rendered = append(rendered, box)
		}
		out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(rendered)...))
		out.WriteString("\n")
		y += buttonHeight
	}
	return out.String()
}

// HitTest maps board-relative coordinates to a button ID.
func (p *Pedalboard) HitTest(x, y int) (string, bool) {
	for _, r := range p.regions {
		if x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h {
			return r.id, true
		}
	}
	return "", false
}

func (p *Pedalboard) buttonStyle(th *theme.Theme, s ButtonState) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch s {
	case StateActive:
		return style.
			BorderForeground(th.Active()).
			Foreground(th.Active()).
			Bold(true)
	case StatePending:
		return style.
			BorderForeground(th.Pending()).
			Foreground(th.Pending())
	case StateHeld:
		return style.
			BorderForeground(th.Accent()).
			Foreground(th.BG()).
			Background(th.Accent()).
			Bold(true)
	default:
		return style.
			BorderForeground(th.Muted()).
			Foreground(th.FG())
	}
}

func joinWithGap(boxes []string) []string {
	gap := strings.Repeat(" ", buttonGap)
	joined := make([]string, 0, len(boxes)*2)
	for i, b := range boxes {
		if i > 0 {
			joined = append(joined, gap)
		}
		joined = append(joined, b)
	}
	return joined
}
