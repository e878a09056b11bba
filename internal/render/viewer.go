package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Viewer displays pre-rendered tree lines on a tcell screen.
// The last screen row is a status line; the rest scrolls over the lines.
type Viewer struct {
	mu sync.Mutex

	screen  tcell.Screen
	lines   []string
	title   string
	offsetY int
	offsetX int

	textStyle   tcell.Style
	statusStyle tcell.Style
}

// NewViewer creates a viewer over an initialized screen.
func NewViewer(screen tcell.Screen, lines []string, title string) *Viewer {
	return &Viewer{
		screen:      screen,
		lines:       lines,
		title:       title,
		textStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Reverse(true),
	}
}

// SetLines replaces the displayed lines and resets scrolling.
func (v *Viewer) SetLines(lines []string, title string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines = lines
	v.title = title
	v.offsetX = 0
	v.offsetY = 0
}

// Offset returns the current scroll position.
func (v *Viewer) Offset() (x, y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offsetX, v.offsetY
}

// Draw renders the visible window and shows it.
func (v *Viewer) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1
	if rows < 0 {
		rows = 0
	}

	for row := 0; row < rows; row++ {
		idx := v.offsetY + row
		if idx >= len(v.lines) {
			break
		}
		v.drawText(0, row, width, v.offsetX, v.lines[idx], v.textStyle)
	}

	if height > 0 {
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, height-1, ' ', nil, v.statusStyle)
		}
		v.drawText(0, height-1, width, 0, v.title+"  [arrows scroll, q quit]", v.statusStyle)
	}

	v.screen.Show()
}

// drawText writes s at (x, y), skipping the first skip display cells and
// clipping at width. Wide graphemes that straddle an edge are dropped.
func (v *Viewer) drawText(x, y, width, skip int, s string, style tcell.Style) {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if col < skip {
			col += w
			continue
		}
		cell := x + col - skip
		if cell+w > width {
			return
		}
		runes := g.Runes()
		v.screen.SetContent(cell, y, runes[0], runes[1:], style)
		col += w
	}
}

// maxWidth returns the widest line in display cells.
func (v *Viewer) maxWidth() int {
	widest := 0
	for _, line := range v.lines {
		widest = max(widest, uniseg.StringWidth(line))
	}
	return widest
}

// scroll moves the window, clamped to the content.
func (v *Viewer) scroll(dx, dy int) {
	width, height := v.screen.Size()
	rows := max(height-1, 1)

	v.offsetY = clamp(v.offsetY+dy, 0, max(len(v.lines)-rows, 0))
	v.offsetX = clamp(v.offsetX+dx, 0, max(v.maxWidth()-width, 0))
}

// HandleEvent applies a terminal event.
// Returns true when the viewer should close.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.scroll(0, 0)
	case *tcell.EventKey:
		_, height := v.screen.Size()
		page := max(height-1, 1)

		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			v.scroll(0, -1)
		case tcell.KeyDown:
			v.scroll(0, 1)
		case tcell.KeyLeft:
			v.scroll(-4, 0)
		case tcell.KeyRight:
			v.scroll(4, 0)
		case tcell.KeyPgUp:
			v.scroll(0, -page)
		case tcell.KeyPgDn:
			v.scroll(0, page)
		case tcell.KeyHome:
			v.offsetX, v.offsetY = 0, 0
		case tcell.KeyEnd:
			v.scroll(0, len(v.lines))
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q', 'Q':
				return true
			case 'k':
				v.scroll(0, -1)
			case 'j':
				v.scroll(0, 1)
			case 'h':
				v.scroll(-4, 0)
			case 'l':
				v.scroll(4, 0)
			}
		}
	}
	return false
}

// Run draws and processes events until the user quits.
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}

// clamp limits n to [lo, hi].
func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// View opens the terminal, shows lines until the user quits, and restores
// the terminal.
func View(lines []string, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	NewViewer(screen, lines, title).Run()
	return nil
}
