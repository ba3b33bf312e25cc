// Package screen models the two-window Z-machine screen (spec.md's
// supplemented window/cursor/style layer), grounded on the teacher's
// zmachine/screen.go ScreenModel. Deliberately not a V6 screen model: only
// the upper/lower split every version from 3 on actually uses.
package screen

import "fmt"

// TextStyle is a bitmask of the four style bits set_text_style can
// combine.
type TextStyle int

const (
	Roman        TextStyle = 0
	Bold         TextStyle = 0b0000_0010
	Italic       TextStyle = 0b0000_0100
	ReverseVideo TextStyle = 0b0000_0001
	FixedPitch   TextStyle = 0b0000_1000
)

// Color is an RGB triple the front end renders with.
type Color struct {
	R, G, B int
}

// ToHex renders the color as a "#rrggbb" string, the format lipgloss'
// Color type accepts directly.
func (c Color) ToHex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Font is one of the four fonts set_font can select.
type Font uint16

const (
	FontNormal     Font = 1
	FontPicture    Font = 2
	FontCharGraphs Font = 3
	FontFixedPitch Font = 4
)

// Model is the interpreter's screen state: which window is active, the
// upper window's height and cursor, and each window's current and
// default colors and text style.
type Model struct {
	LowerWindowActive bool
	CurrentFont       Font
	BufferModeOn      bool

	UpperWindowHeight            int
	UpperWindowForeground        Color
	UpperWindowBackground        Color
	DefaultUpperWindowForeground Color
	DefaultUpperWindowBackground Color
	UpperWindowCursorX           int
	UpperWindowCursorY           int
	UpperWindowTextStyle         TextStyle

	DefaultLowerWindowForeground Color
	DefaultLowerWindowBackground Color
	LowerWindowForeground        Color
	LowerWindowBackground        Color
	LowerWindowTextStyle         TextStyle
}

// New builds the initial screen state from the story's default colors,
// per spec.md: the lower window starts active and the upper window
// starts at zero height.
func New(foreground, background Color) Model {
	return Model{
		LowerWindowActive:            true,
		CurrentFont:                  FontNormal,
		BufferModeOn:                 true,
		DefaultUpperWindowForeground: foreground,
		DefaultUpperWindowBackground: background,
		UpperWindowForeground:        foreground,
		UpperWindowBackground:        background,
		UpperWindowCursorX:           1,
		UpperWindowCursorY:           1,
		UpperWindowTextStyle:         Roman,
		DefaultLowerWindowForeground: background,
		DefaultLowerWindowBackground: foreground,
		LowerWindowForeground:        background,
		LowerWindowBackground:        foreground,
		LowerWindowTextStyle:         Roman,
	}
}

// SplitWindow sets the upper window's height in lines, per split_window.
func (m *Model) SplitWindow(lines int) {
	m.UpperWindowHeight = lines
	if m.UpperWindowCursorY > lines {
		m.UpperWindowCursorY = 1
	}
}

// SetWindow selects the active window: 0 is the lower (scrolling)
// window, 1 is the upper window.
func (m *Model) SetWindow(window uint16) {
	m.LowerWindowActive = window == 0
	if window == 1 {
		m.UpperWindowCursorX, m.UpperWindowCursorY = 1, 1
	}
}

// SetCursor moves the upper window's cursor, per set_cursor (only
// meaningful while the upper window is selected).
func (m *Model) SetCursor(line, column int) {
	m.UpperWindowCursorY = line
	m.UpperWindowCursorX = column
}

// SetTextStyle applies a style to whichever window is currently active.
// A value of 0 (Roman) clears all other style bits rather than adding to
// them, per spec.md.
func (m *Model) SetTextStyle(style TextStyle) {
	target := &m.LowerWindowTextStyle
	if !m.LowerWindowActive {
		target = &m.UpperWindowTextStyle
	}
	if style == Roman {
		*target = Roman
		return
	}
	*target |= style
}

// Color resolves a set_colour argument (0 = current, 1 = default, 2-12 =
// the standard named colors) against the active window.
func (m *Model) Color(code uint16, foreground bool) Color {
	switch code {
	case 0:
		if foreground {
			if m.LowerWindowActive {
				return m.LowerWindowForeground
			}
			return m.UpperWindowForeground
		}
		if m.LowerWindowActive {
			return m.LowerWindowBackground
		}
		return m.UpperWindowBackground
	case 1:
		if foreground {
			if m.LowerWindowActive {
				return m.DefaultLowerWindowForeground
			}
			return m.DefaultUpperWindowForeground
		}
		if m.LowerWindowActive {
			return m.DefaultLowerWindowBackground
		}
		return m.DefaultUpperWindowBackground
	default:
		return namedColor(code)
	}
}

// SetColor assigns foreground/background colors (spec.md's set_colour
// codes, resolved first through Color) to the active window.
func (m *Model) SetColor(foregroundCode, backgroundCode uint16) {
	fg := m.Color(foregroundCode, true)
	bg := m.Color(backgroundCode, false)
	if m.LowerWindowActive {
		m.LowerWindowForeground, m.LowerWindowBackground = fg, bg
	} else {
		m.UpperWindowForeground, m.UpperWindowBackground = fg, bg
	}
}

func namedColor(code uint16) Color {
	switch code {
	case 2:
		return Color{0, 0, 0}
	case 3:
		return Color{255, 0, 0}
	case 4:
		return Color{0, 255, 0}
	case 5:
		return Color{255, 255, 0}
	case 6:
		return Color{0, 0, 255}
	case 7:
		return Color{255, 0, 255}
	case 8:
		return Color{0, 255, 255}
	case 9:
		return Color{255, 255, 255}
	case 10:
		return Color{192, 192, 192}
	case 11:
		return Color{128, 128, 128}
	case 12:
		return Color{64, 64, 64}
	default:
		return Color{0, 0, 0}
	}
}
