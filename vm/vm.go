// Package vm implements the Z-machine's handler set and fetch-decode-
// dispatch loop (spec.md C5 and the data flow of spec.md §2): a concrete VM
// facade over memory, the object decoder, the variable engine, and the
// host collaborators, plus a static function-pointer table of per-opcode
// handlers keyed by (form, opcode). Grounded on the giant switch in the
// teacher's zmachine/zmachine.go (StepMachine), decomposed per spec.md §9
// into the table-of-handlers shape other_examples' beevik-go6502 uses.
package vm

import (
	"zvm/dictionary"
	"zvm/host"
	"zvm/memory"
	"zvm/object"
	"zvm/screen"
	"zvm/variables"
	"zvm/zfault"
	"zvm/zvmsave"
	"zvm/ztext"
)

// streamState tracks which of the four Z-machine output streams are
// currently active, per spec.md's output_stream opcode. Grounded on the
// teacher's Streams/MemoryStreamData.
type streamState struct {
	screen        bool
	transcript    bool
	commandScript bool
	memory        []memoryStream
}

type memoryStream struct {
	baseAddress uint32
	ptr         uint32
}

// VM is the concrete facade spec.md §9 asks for in place of the source's
// untyped value: the narrow capability set (memory, header, variable
// engine, object decoder, active-frame accessor) plus the host
// collaborators handlers reach through for I/O, randomness, and
// persistence.
type VM struct {
	Mem       *memory.Memory
	Header    memory.Header
	Objects   *object.Decoder
	Vars      *variables.Engine
	Stack     variables.CallStack
	Text      *ztext.Decoder
	Alphabets *ztext.Alphabets
	Dict      *dictionary.Dictionary
	Screen    screen.Model

	Output     host.TextOutput
	LineInput  host.TextInput
	CharInput  host.CharInput
	RNG        host.RNG
	SaveStore  host.SaveStore
	UndoStates zvmsave.UndoStack
	// undoDestVars runs in lockstep with UndoStates: each entry is the
	// destination variable the save_undo call that produced the matching
	// snapshot was about to store into, consulted by restore_undo (see
	// handlers_ext.go).
	undoDestVars []uint8

	streams streamState

	// Quit is set by the quit opcode and checked by the fetch loop after
	// every step, per spec.md §5's cancellation model.
	Quit bool
}

// New constructs a VM over a loaded story-file image and its host
// collaborators. The image is taken by reference; New does not copy it.
func New(image []uint8, out host.TextOutput, lineIn host.TextInput, charIn host.CharInput, rng host.RNG, saveStore host.SaveStore) (*VM, error) {
	mem := memory.New(image, uint32(len(image)))
	header, err := memory.ParseHeader(mem)
	if err != nil {
		return nil, err
	}
	// Re-wrap with the real static/high memory boundary now that the
	// header has told us where it is.
	mem = memory.New(image, header.StaticMemBase)

	alphabets, err := ztext.LoadAlphabets(mem, header.Version, header.AlphabetTableAddress)
	if err != nil {
		return nil, err
	}
	text := ztext.NewDecoder(mem, header.Version, alphabets, header.AbbreviationsTable)

	var dict *dictionary.Dictionary
	if header.DictionaryAddress != 0 {
		dict, err = dictionary.Parse(mem, header.DictionaryAddress, header.Version, text)
		if err != nil {
			return nil, err
		}
	}

	objects := object.NewDecoder(mem, header.ObjectTableAddress, header.Version)

	vmachine := &VM{
		Mem:       mem,
		Header:    header,
		Objects:   objects,
		Text:      text,
		Alphabets: alphabets,
		Dict:      dict,
		Screen:    screen.New(screen.Color{R: 255, G: 255, B: 255}, screen.Color{R: 0, G: 0, B: 0}),

		Output:    out,
		LineInput: lineIn,
		CharInput: charIn,
		RNG:       rng,
		SaveStore: saveStore,
		streams:   streamState{screen: true},
	}
	vmachine.Vars = variables.NewEngine(mem, header.GlobalVariablesAddress, &vmachine.Stack)

	initialFrame, err := vmachine.buildInitialFrame()
	if err != nil {
		return nil, err
	}
	vmachine.Stack.Push(initialFrame)

	return vmachine, nil
}

// buildInitialFrame constructs the top-level activation the story begins
// executing in. Version 6 stories treat the "first instruction" header
// field as a packed routine address carrying its own local-variable count
// header byte; every other version starts directly at a byte address with
// no locals, grounded on the teacher's LoadRom.
func (vm *VM) buildInitialFrame() (variables.Frame, error) {
	if vm.Header.Version == 6 {
		packed := vm.Header.PackedAddress(vm.Header.InitialPC, false)
		localCount, err := vm.Mem.ReadU8(packed)
		if err != nil {
			return variables.Frame{}, err
		}
		locals := make([]uint16, localCount)
		return variables.NewFrame(packed+1, locals, false, 0), nil
	}
	return variables.NewFrame(vm.Header.InitialPC, nil, false, 0), nil
}

// CurrentFrame returns the active call frame.
func (vm *VM) CurrentFrame() (*variables.Frame, error) {
	return vm.Stack.Current()
}

// Print emits already-decoded text through the active output streams: the
// screen (when host.TextOutput is set and the screen stream is active) and
// the innermost open memory stream (spec.md's output_stream, which
// captures text into story memory).
func (vm *VM) Print(s string) error {
	for i := range vm.streams.memory {
		ms := &vm.streams.memory[len(vm.streams.memory)-1-i]
		for _, r := range s {
			b, ok := ztext.UnicodeToZscii(r)
			if !ok {
				b = '?'
			}
			if err := vm.Mem.WriteU8(ms.ptr, b); err != nil {
				return err
			}
			ms.ptr++
		}
		// Only the innermost (most recently opened) memory stream receives
		// output, matching the teacher's single append-target semantics.
		break
	}
	if vm.streams.screen && vm.Output != nil {
		if err := vm.Output.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// PackedAddress expands a packed routine or string address using this
// story's version and header offsets.
func (vm *VM) PackedAddress(packed uint32, isString bool) uint32 {
	return vm.Header.PackedAddress(packed, isString)
}

// Call pushes a new activation for routineAddress (already expanded from a
// packed address), passing args as the initial locals, and arranges for
// storesResult to control whether the eventual return writes its value
// back. routineAddress 0 is the special "no call is made" case: for a
// storing call it synchronously writes 0 and never pushes a frame,
// matching spec.md's call semantics and the teacher's z.call early return.
func (vm *VM) Call(routineAddress uint32, args []uint16, storesResult bool, storeDestVar uint8) error {
	if routineAddress == 0 {
		if storesResult {
			return vm.Vars.WriteVar(storeDestVar, 0, false)
		}
		return nil
	}

	localCount, err := vm.Mem.ReadU8(routineAddress)
	if err != nil {
		return err
	}
	routineAddress++

	locals := make([]uint16, localCount)
	for i := 0; i < int(localCount); i++ {
		if i < len(args) {
			locals[i] = args[i]
			if vm.Header.Version < 5 {
				routineAddress += 2
			}
			continue
		}
		if vm.Header.Version < 5 {
			v, err := vm.Mem.ReadU16(routineAddress)
			if err != nil {
				return err
			}
			locals[i] = v
			routineAddress += 2
		}
	}

	frame := variables.NewFrame(routineAddress, locals, storesResult, len(args))
	frame.ReturnDestVar = storeDestVar
	vm.Stack.Push(frame)
	return nil
}

// Return pops the current routine activation and, if it was called by a
// storing call, writes val to the destination variable stashed on the
// frame at call time. Popping the last frame (the top-level program
// returning) is a fault: there is no caller left to resume.
func (vm *VM) Return(val uint16) error {
	frame, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	if vm.Stack.Depth() == 0 {
		return zfault.New(zfault.StackUnderflow, "return from the top-level frame")
	}
	if frame.StoresResult {
		return vm.Vars.WriteVar(frame.ReturnDestVar, val, false)
	}
	return nil
}
