package widgets

import (
	"testing"

	"go-fingerpick/theme"
)

func testBoard() *Pedalboard {
	return New([]Row{
		{Title: "row", Buttons: []Button{
			{ID: "a", Label: "AA"},
			{ID: "b", Label: "BB"},
		}},
	})
}

func TestHitTest(t *testing.T) {
	th := theme.New(theme.Default())
	p := testBoard()
	p.Render(th, func(string) ButtonState { return StateIdle })

	// Title on line 0, 3-line buttons below. "AA" renders 6 columns wide
	// (label + padding + border), the next button starts one gap later.
	cases := []struct {
		x, y int
		id   string
		ok   bool
	}{
		{1, 2, "a", true},
		{5, 1, "a", true},
		{8, 2, "b", true},
		{0, 0, "", false}, // title line
		{6, 2, "", false}, // gap between buttons
		{99, 2, "", false},
	}
	for _, c := range cases {
		id, ok := p.HitTest(c.x, c.y)
		if id != c.id || ok != c.ok {
			t.Errorf("HitTest(%d,%d) = %q,%v; want %q,%v", c.x, c.y, id, ok, c.id, c.ok)
		}
	}
}

func TestHitTestBeforeRender(t *testing.T) {
	p := testBoard()
	if id, ok := p.HitTest(1, 1); ok {
		t.Errorf("unrendered board hit %q", id)
	}
}
