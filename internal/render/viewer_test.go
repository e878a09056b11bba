package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText reads one screen row back as a string with trailing blanks removed.
func rowText(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("└── %d", i)
	}
	return lines
}

func TestViewerDraw(t *testing.T) {
	screen := newSimScreen(t, 20, 4)
	v := NewViewer(screen, []string{"│   ┌── 7", "└── 3", "    └── 1"}, "3 values")
	v.Draw()

	want := []string{"│   ┌── 7", "└── 3", "    └── 1"}
	for y, line := range want {
		if got := rowText(screen, y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
	if got := rowText(screen, 3); !strings.HasPrefix(got, "3 values") {
		t.Errorf("status row = %q, want prefix %q", got, "3 values")
	}
}

func TestViewerClipsWideLines(t *testing.T) {
	screen := newSimScreen(t, 6, 2)
	v := NewViewer(screen, []string{"└── 123456"}, "")
	v.Draw()

	if got := rowText(screen, 0); got != "└── 12" {
		t.Errorf("clipped row = %q, want %q", got, "└── 12")
	}
}

func TestViewerScroll(t *testing.T) {
	screen := newSimScreen(t, 20, 5)
	v := NewViewer(screen, numberedLines(10), "ten")

	tests := []struct {
		name  string
		key   tcell.Key
		ch    rune
		wantY int
	}{
		{"down", tcell.KeyDown, 0, 1},
		{"j", tcell.KeyRune, 'j', 2},
		{"up", tcell.KeyUp, 0, 1},
		{"page down", tcell.KeyPgDn, 0, 5},
		{"page down clamps", tcell.KeyPgDn, 0, 6},
		{"end", tcell.KeyEnd, 0, 6},
		{"home", tcell.KeyHome, 0, 0},
		{"up clamps", tcell.KeyUp, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if quit := v.HandleEvent(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone)); quit {
				t.Fatal("HandleEvent() requested quit")
			}
			if _, y := v.Offset(); y != tt.wantY {
				t.Errorf("offsetY = %d, want %d", y, tt.wantY)
			}
		})
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	v.Draw()
	if got := rowText(screen, 0); got != "└── 1" {
		t.Errorf("first row after scrolling = %q, want %q", got, "└── 1")
	}
}

func TestViewerHorizontalScroll(t *testing.T) {
	screen := newSimScreen(t, 8, 3)
	v := NewViewer(screen, []string{"        └── 100"}, "")

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if x, _ := v.Offset(); x != 4 {
		t.Errorf("offsetX = %d, want 4", x)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if x, _ := v.Offset(); x != 7 {
		t.Errorf("offsetX = %d, want clamp at 7", x)
	}

	v.Draw()
	if got := rowText(screen, 0); got != " └── 100" {
		t.Errorf("row after horizontal scroll = %q, want %q", got, " └── 100")
	}
}

func TestViewerQuit(t *testing.T) {
	screen := newSimScreen(t, 10, 3)
	v := NewViewer(screen, nil, "")

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("x should not quit")
	}
}

func TestViewerSetLinesResetsOffset(t *testing.T) {
	screen := newSimScreen(t, 20, 3)
	v := NewViewer(screen, numberedLines(10), "")
	v.HandleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))

	v.SetLines(numberedLines(2), "two")
	if x, y := v.Offset(); x != 0 || y != 0 {
		t.Errorf("Offset() = %d,%d after SetLines, want 0,0", x, y)
	}
}
