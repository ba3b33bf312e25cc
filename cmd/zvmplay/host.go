package main

import (
	"os"

	"zvm/screen"
	"zvm/vm"
)

// textChunk carries a piece of already-decoded output text alongside a
// snapshot of the screen model taken at the moment it was written. The
// screen model lives on the VM, which runs on its own goroutine (see
// runInterpreter); rather than have the UI goroutine read vm.Screen while
// the interpreter goroutine might be mutating it, every write captures a
// copy at the safe point, the same instant the teacher's ZMachine would
// have sent a ScreenModel message down its output channel.
type textChunk struct {
	text   string
	screen screen.Model
}

type lineRequest struct{ screen screen.Model }
type charRequest struct{ screen screen.Model }
type runFinished struct{ err error }

// termHost bridges the VM's host.TextOutput/TextInput/CharInput interfaces
// to bubbletea: every call hands a message to the UI goroutine over out and
// blocks for a response where one is needed, mirroring the teacher's
// outputChannel/inputChannel pair in zmachine.ZMachine.
type termHost struct {
	vm       *vm.VM
	out      chan<- any
	lineResp <-chan string
	charResp <-chan rune
}

func (h *termHost) WriteString(s string) error {
	h.out <- textChunk{text: s, screen: h.vm.Screen}
	return nil
}

func (h *termHost) ReadLine() (string, error) {
	h.out <- lineRequest{screen: h.vm.Screen}
	return <-h.lineResp, nil
}

func (h *termHost) ReadChar() (rune, error) {
	h.out <- charRequest{screen: h.vm.Screen}
	return <-h.charResp, nil
}

// fileSaveStore implements host.SaveStore over the local filesystem,
// grounded on the teacher's os.WriteFile/os.ReadFile handling of
// saveRequestMessage/restoreRequestMessage in main.go.
type fileSaveStore struct{}

func (fileSaveStore) Save(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

func (fileSaveStore) Load(name string) ([]byte, error) {
	return os.ReadFile(name)
}
