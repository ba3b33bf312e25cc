package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"zvm/zvmsave"
)

// handleSaveRestoreKeys implements the front end's own save/restore command,
// bound to ctrl+s/ctrl+r rather than an in-story opcode: spec.md's opcode
// set carries only save_undo/restore_undo (the in-memory undo stack), so
// full persistent save/restore lives here, one layer up, exactly where
// spec.md §6's save_state()/restore_state(bytes) host API says it belongs.
// handled is false when msg isn't one of these bindings, telling the
// caller to keep processing it as an ordinary key press.
func (m *playModel) handleSaveRestoreKeys(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch msg.String() {
	case "ctrl+s":
		return m.save(), true
	case "ctrl+r":
		return m.restore(), true
	default:
		return nil, false
	}
}

func (m *playModel) save() tea.Cmd {
	state, err := zvmsave.Capture(m.machine.Mem, m.machine.Header.StaticMemBase, m.machine.Stack)
	if err != nil {
		m.lower.WriteString(fmt.Sprintf("\n[save failed: %v]\n", err))
		return nil
	}
	name := m.saveFileName()
	if err := (fileSaveStore{}).Save(name, state.Serialize()); err != nil {
		m.lower.WriteString(fmt.Sprintf("\n[save failed: %v]\n", err))
		return nil
	}
	m.lower.WriteString(fmt.Sprintf("\n[saved to %s]\n", name))
	return nil
}

func (m *playModel) restore() tea.Cmd {
	name := m.saveFileName()
	data, err := (fileSaveStore{}).Load(name)
	if err != nil {
		m.lower.WriteString(fmt.Sprintf("\n[restore failed: %v]\n", err))
		return nil
	}
	state, ok := zvmsave.Deserialize(data)
	if !ok {
		m.lower.WriteString("\n[restore failed: not a zvm save file]\n")
		return nil
	}
	newStack, err := zvmsave.Apply(m.machine.Mem, m.machine.Header.StaticMemBase, state)
	if err != nil {
		m.lower.WriteString(fmt.Sprintf("\n[restore failed: %v]\n", err))
		return nil
	}
	m.machine.Stack = newStack
	m.lower.WriteString(fmt.Sprintf("\n[restored from %s]\n", name))
	return nil
}

// saveFileName derives a ".zvmsave" path from the story's own file path,
// e.g. "zork1.z5" -> "zork1.zvmsave".
func (m *playModel) saveFileName() string {
	base := filepath.Base(m.romPath)
	if ext := filepath.Ext(base); strings.HasPrefix(ext, ".z") {
		base = base[:len(base)-len(ext)]
	}
	return base + ".zvmsave"
}
