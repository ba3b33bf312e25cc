package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"zvm/screen"
	"zvm/vm"
)

type runState int

const (
	running runState = iota
	waitingForLine
	waitingForChar
)

// playModel is the bubbletea Model driving one Z-machine session, grounded
// on the teacher's runStoryModel: a lower (scrolling) window rendered as a
// single growing transcript and an upper (status/split) window rendered as
// fixed lines, restyled whenever the screen model changes.
type playModel struct {
	machine  *vm.VM
	romPath  string
	out      <-chan any
	lineResp chan<- string
	charResp chan<- rune

	state   runState
	screen  screen.Model
	lower   strings.Builder
	upper   []string
	input   textinput.Model
	width   int
	height  int
	fault   string
	quitted bool
}

func newPlayModel(m *vm.VM, romPath string, out <-chan any, lineResp chan<- string, charResp chan<- rune) playModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 256
	return playModel{
		machine:  m,
		romPath:  romPath,
		out:      out,
		lineResp: lineResp,
		charResp: charResp,
		screen:   m.Screen,
		input:    ti,
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(waitForInterpreter(m.out), tea.SetWindowTitle(m.romPath))
}

// waitForInterpreter blocks on the shared output channel and lifts whatever
// arrives into a tea.Msg, the same single-consumer pattern as the teacher's
// function of the same name.
func waitForInterpreter(out <-chan any) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-out
		if !ok {
			return runFinished{}
		}
		return msg
	}
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd, handled := m.handleSaveRestoreKeys(msg); handled {
			return m, cmd
		}
		return m.handleKey(msg)

	case textChunk:
		m.screen = msg.screen
		if m.screen.LowerWindowActive {
			m.lower.WriteString(msg.text)
		} else {
			m.writeUpper(msg.text)
		}
		return m, waitForInterpreter(m.out)

	case lineRequest:
		m.screen = msg.screen
		m.state = waitingForLine
		m.input.SetValue("")
		return m, waitForInterpreter(m.out)

	case charRequest:
		m.screen = msg.screen
		m.state = waitingForChar
		return m, waitForInterpreter(m.out)

	case runFinished:
		m.quitted = true
		if msg.err != nil {
			m.fault = msg.err.Error()
		}
		return m, tea.Quit
	}

	if m.state == waitingForLine {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches a key press according to whether the interpreter is
// waiting for a full line (sread), a single character (read_char), or
// isn't waiting on input at all (keys are ignored).
func (m playModel) handleKey(msg tea.KeyMsg) (playModel, tea.Cmd) {
	switch m.state {
	case waitingForChar:
		m.state = running
		r := keyToRune(msg)
		m.charResp <- r
		return m, nil

	case waitingForLine:
		if msg.Type == tea.KeyEnter {
			line := m.input.Value()
			m.lower.WriteString("\n" + line + "\n")
			m.state = running
			m.input.SetValue("")
			m.lineResp <- line
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// keyToRune maps a bubbletea key message to the rune read_char delivers,
// defaulting to a carriage return for Enter, matching the teacher's
// keyToZChar table for the handful of keys this interpreter's read_char
// callers actually care about.
func keyToRune(msg tea.KeyMsg) rune {
	switch msg.Type {
	case tea.KeyEnter:
		return '\r'
	case tea.KeyBackspace:
		return '\b'
	case tea.KeyEscape:
		return 27
	default:
		if len(msg.Runes) > 0 {
			return msg.Runes[0]
		}
		return 0
	}
}

// writeUpper writes text into the fixed upper window at its current
// cursor, padding new rows with spaces as the window grows.
func (m *playModel) writeUpper(text string) {
	for len(m.upper) < m.screen.UpperWindowHeight {
		m.upper = append(m.upper, "")
	}
	row := m.screen.UpperWindowCursorY - 1
	if row < 0 || row >= len(m.upper) {
		return
	}
	col := m.screen.UpperWindowCursorX - 1
	if col < 0 {
		col = 0
	}
	line := m.upper[row]
	for len(line) < col {
		line += " "
	}
	if col+len(text) <= len(line) {
		m.upper[row] = line[:col] + text + line[col+len(text):]
	} else {
		m.upper[row] = line[:col] + text
	}
}

func (m playModel) View() string {
	if m.fault != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true).
			Render(fmt.Sprintf("Z-machine fault: %s\n", m.fault))
	}
	if m.quitted {
		return "Goodbye.\n"
	}
	if m.width == 0 {
		return "Loading story...\n"
	}

	var b strings.Builder
	for _, row := range m.upper {
		b.WriteString(row)
		b.WriteByte('\n')
	}

	body := wordwrap.String(m.lower.String(), m.width)
	lines := strings.Split(body, "\n")
	visible := m.height - len(m.upper) - 2
	if visible > 0 && len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	b.WriteString(strings.Join(lines, "\n"))

	if m.state == waitingForLine {
		b.WriteString("\n" + m.input.View())
	}
	return b.String()
}
