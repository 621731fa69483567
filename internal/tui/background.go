package tui

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tinytelemetry/mbtilens/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const backgroundInterval = 80 * time.Millisecond

// BackgroundTickMsg advances the decorative background by one frame.
type BackgroundTickMsg struct{}

func backgroundTick() tea.Cmd {
	return tea.Tick(backgroundInterval, func(time.Time) tea.Msg {
		return BackgroundTickMsg{}
	})
}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
}

// Background is the purely cosmetic animation drawn around the page card.
// Nothing else reads its state.
type Background struct {
	kind      model.Background
	rnd       *rand.Rand
	width     int
	height    int
	frame     int
	particles []particle
}

// NewBackground creates an animation of the given kind. seed fixes the
// random layout.
func NewBackground(kind model.Background, seed uint64) *Background {
	return &Background{
		kind: kind,
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Animated reports whether the background needs ticks.
func (b *Background) Animated() bool {
	return b.kind != model.BackgroundNone
}

// Resize reseeds the field for a new terminal size.
func (b *Background) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.particles = b.particles[:0]

	var n int
	switch b.kind {
	case model.BackgroundParticles:
		n = min(80, width*height/60)
	case model.BackgroundHearts:
		n = min(40, width*height/120)
	}
	for range n {
		b.particles = append(b.particles, b.spawn(b.rnd.Float64()*float64(max(height, 1))))
	}
}

func (b *Background) spawn(y float64) particle {
	p := particle{
		x: b.rnd.Float64() * float64(max(b.width, 1)),
		y: y,
	}
	switch b.kind {
	case model.BackgroundHearts:
		p.vy = 0.2 + b.rnd.Float64()*0.5
		p.glyph = '♥'
	default:
		p.vx = (b.rnd.Float64() - 0.5) * 1.2
		p.vy = (b.rnd.Float64() - 0.5) * 0.6
		p.glyph = []rune{'·', '•', '∘'}[b.rnd.IntN(3)]
	}
	return p
}

// Step advances one frame.
func (b *Background) Step() {
	b.frame++
	w, h := float64(b.width), float64(b.height)
	if w <= 0 || h <= 0 {
		return
	}
	for i := range b.particles {
		p := &b.particles[i]
		switch b.kind {
		case model.BackgroundHearts:
			p.y += p.vy
			p.x += math.Sin(float64(b.frame)/10+float64(i)) * 0.15
			if p.y >= h {
				*p = b.spawn(0)
			}
		default:
			p.x += p.vx
			p.y += p.vy
			if p.x < 0 || p.x >= w {
				p.vx = -p.vx
				p.x = math.Max(0, math.Min(w-1, p.x))
			}
			if p.y < 0 || p.y >= h {
				p.vy = -p.vy
				p.y = math.Max(0, math.Min(h-1, p.y))
			}
		}
	}
}

var gradientRamp = []rune(" ·░▒▓▒░· ")

// Grid returns the current frame as rows of runes.
func (b *Background) Grid() [][]rune {
	grid := make([][]rune, b.height)
	for y := range grid {
		row := make([]rune, b.width)
		for x := range row {
			row[x] = ' '
			if b.kind == model.BackgroundGradient {
				phase := (x + 2*y + b.frame/2) % (len(gradientRamp) * 4)
				row[x] = gradientRamp[phase/4]
			}
		}
		grid[y] = row
	}
	for _, p := range b.particles {
		x, y := int(p.x), int(p.y)
		if y >= 0 && y < b.height && x >= 0 && x < b.width {
			grid[y][x] = p.glyph
		}
	}
	return grid
}

// Style is the style background cells are drawn with under accent.
func (b *Background) Style(accent lipgloss.Color) lipgloss.Style {
	if b.kind == model.BackgroundHearts {
		return lipgloss.NewStyle().Foreground(ColorHeart)
	}
	return lipgloss.NewStyle().Foreground(accent).Faint(b.kind == model.BackgroundGradient)
}

// compose centres card over the background grid.
func compose(grid [][]rune, style lipgloss.Style, card string, width, height int) string {
	if width <= 0 || height <= 0 || len(grid) == 0 {
		return card
	}

	lines := strings.Split(card, "\n")
	cardW := lipgloss.Width(card)
	top := max(0, (height-len(lines))/2)
	left := max(0, (width-cardW)/2)

	paint := func(cells []rune) string {
		if len(cells) == 0 {
			return ""
		}
		return style.Render(string(cells))
	}

	out := make([]string, 0, height)
	for y := 0; y < height && y < len(grid); y++ {
		row := grid[y]
		i := y - top
		if i < 0 || i >= len(lines) {
			out = append(out, paint(row))
			continue
		}
		line := lines[i]
		pad := max(0, cardW-lipgloss.Width(line))
		right := min(len(row), left+cardW)
		out = append(out, paint(row[:min(left, len(row))])+line+strings.Repeat(" ", pad)+paint(row[right:]))
	}
	return strings.Join(out, "\n")
}
