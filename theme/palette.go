package theme

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

// Palette is an ordered color ramp; roles index into it by normalized
// position.
type Palette struct {
	Name   string
	Colors []RGB
}

// Default is the built-in ember ramp used when no .gpl file is configured.
func Default() *Palette {
	return &Palette{
		Name: "ember",
		Colors: []RGB{
			{26, 16, 37},    // deep violet
			{48, 30, 66},    // dark violet
			{94, 53, 107},   // muted plum
			{143, 78, 139},  // dusty magenta
			{198, 120, 153}, // rose
			{233, 105, 128}, // coral
			{246, 135, 92},  // ember orange
			{252, 176, 100}, // amber
			{254, 217, 138}, // pale gold
			{255, 245, 200}, // near white
		},
	}
}

// Lookup maps a normalized position 0-1 onto the ramp.
func (p *Palette) Lookup(norm float64) RGB {
	if len(p.Colors) == 0 {
		return RGB{255, 255, 255}
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	idx := int(norm * float64(len(p.Colors)-1))
	return p.Colors[idx]
}

// LoadGPL parses a GIMP palette file.
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// Parse RGB values (first 3 fields are R G B)
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// LoadGPLOr loads a palette file, falling back to the built-in ramp when the
// path is empty or unreadable.
func LoadGPLOr(path string) *Palette {
	if path == "" {
		return Default()
	}
	p, err := LoadGPL(path)
	if err != nil || len(p.Colors) == 0 {
		return Default()
	}
	return p
}
