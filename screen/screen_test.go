package screen_test

import (
	"testing"

	"zvm/screen"
)

func TestSplitWindowAndSetWindow(t *testing.T) {
	m := screen.New(screen.Color{R: 0, G: 0, B: 0}, screen.Color{R: 255, G: 255, B: 255})
	m.SplitWindow(4)
	if m.UpperWindowHeight != 4 {
		t.Errorf("expected height 4, got %d", m.UpperWindowHeight)
	}

	m.SetWindow(1)
	if m.LowerWindowActive {
		t.Error("expected upper window active")
	}
	if m.UpperWindowCursorX != 1 || m.UpperWindowCursorY != 1 {
		t.Errorf("expected cursor reset to (1,1), got (%d,%d)", m.UpperWindowCursorX, m.UpperWindowCursorY)
	}
}

func TestSetTextStyleRomanClears(t *testing.T) {
	m := screen.New(screen.Color{}, screen.Color{})
	m.SetTextStyle(screen.Bold)
	m.SetTextStyle(screen.Italic)
	if m.LowerWindowTextStyle&screen.Bold == 0 || m.LowerWindowTextStyle&screen.Italic == 0 {
		t.Fatal("expected both style bits set")
	}
	m.SetTextStyle(screen.Roman)
	if m.LowerWindowTextStyle != screen.Roman {
		t.Errorf("expected Roman to clear other bits, got %v", m.LowerWindowTextStyle)
	}
}

func TestSetColorNamedAndCurrent(t *testing.T) {
	m := screen.New(screen.Color{}, screen.Color{})
	m.SetColor(3, 9) // red on white
	if m.LowerWindowForeground != (screen.Color{R: 255}) {
		t.Errorf("expected red foreground, got %+v", m.LowerWindowForeground)
	}
	if m.LowerWindowBackground != (screen.Color{R: 255, G: 255, B: 255}) {
		t.Errorf("expected white background, got %+v", m.LowerWindowBackground)
	}

	m.SetColor(0, 0) // current: should be a no-op given unchanged state
	if m.LowerWindowForeground != (screen.Color{R: 255}) {
		t.Errorf("expected current color to stay red, got %+v", m.LowerWindowForeground)
	}
}

func TestColorHex(t *testing.T) {
	c := screen.Color{R: 255, G: 0, B: 128}
	if c.ToHex() != "#ff0080" {
		t.Errorf("expected #ff0080, got %s", c.ToHex())
	}
}
