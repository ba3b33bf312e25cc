// Command zvmplay is the terminal front end for the interpreter core: it
// supplies the host.TextOutput/TextInput/CharInput/RNG/SaveStore
// collaborators and drives the VM's fetch-decode-dispatch loop from a
// bubbletea event loop. Grounded on the teacher's root main.go.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zvm/vm"
	"zvm/zvmrand"
)

func main() {
	romPath := flag.String("rom", "", "path to a Z-machine story file")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: zvmplay -rom <story file>")
		os.Exit(1)
	}

	romBytes, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading rom: %v\n", err)
		os.Exit(1)
	}

	out := make(chan any)
	lineResp := make(chan string)
	charResp := make(chan rune)

	host := &termHost{out: out, lineResp: lineResp, charResp: charResp}

	machine, err := vm.New(romBytes, host, host, host, zvmrand.New(), fileSaveStore{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading story: %v\n", err)
		os.Exit(1)
	}
	host.vm = machine

	go func() {
		err := machine.Run()
		out <- runFinished{err: err}
		close(out)
	}()

	model := newPlayModel(machine, *romPath, out, lineResp, charResp)

	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running interpreter: %v\n", err)
		os.Exit(1)
	}
}
