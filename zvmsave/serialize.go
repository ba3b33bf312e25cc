package zvmsave

import "zvm/variables"

// magic identifies zvm's own save format, the counterpart to the
// teacher's "GOZM" tag (renamed since this is a different story format:
// dynamic memory size is no longer assumed to equal staticMemoryBase's
// uint16 range, so the header carries it as a full 32-bit length).
var magic = [4]byte{'Z', 'V', 'S', 'V'}

// Serialize encodes a State as: magic(4) + dynMemLen(4) + dynMem +
// frameCount(2) + frames. Each frame is pc(4) + storesResult(1) +
// returnDestVar(1) + numValuesPassed(2) + localsCount(2) + locals +
// stackSize(2) + stack, directly adapted from the teacher's
// CallStackFrame.serialize.
func (s State) Serialize() []byte {
	frames := s.callStack.Frames()

	var frameBytes []byte
	for _, f := range frames {
		frameBytes = append(frameBytes, serializeFrame(f)...)
	}

	out := make([]byte, 0, 4+4+len(s.dynamicMemory)+2+len(frameBytes))
	out = append(out, magic[:]...)
	out = append(out, putU32(uint32(len(s.dynamicMemory)))...)
	out = append(out, s.dynamicMemory...)
	out = append(out, putU16(uint16(len(frames)))...)
	out = append(out, frameBytes...)
	return out
}

// Deserialize reverses Serialize, returning false if the data is too
// short or doesn't carry zvm's magic tag.
func Deserialize(data []byte) (State, bool) {
	if len(data) < 10 || string(data[0:4]) != string(magic[:]) {
		return State{}, false
	}
	offset := 4
	dynLen := getU32(data[offset:])
	offset += 4

	if uint32(len(data)) < uint32(offset)+dynLen+2 {
		return State{}, false
	}
	dynMem := make([]uint8, dynLen)
	copy(dynMem, data[offset:uint32(offset)+dynLen])
	offset += int(dynLen)

	frameCount := int(getU16(data[offset:]))
	offset += 2

	frames := make([]variables.Frame, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		f, n, ok := deserializeFrame(data[offset:])
		if !ok {
			return State{}, false
		}
		frames = append(frames, f)
		offset += n
	}

	return State{dynamicMemory: dynMem, callStack: variables.FromFrames(frames)}, true
}

func serializeFrame(f variables.Frame) []byte {
	locals := f.Locals
	stack := f.StackSnapshot()

	storesResult := byte(0)
	if f.StoresResult {
		storesResult = 1
	}

	out := make([]byte, 0, 4+1+1+2+2+len(locals)*2+2+len(stack)*2)
	out = append(out, putU32(f.PC)...)
	out = append(out, storesResult)
	out = append(out, f.ReturnDestVar)
	out = append(out, putU16(uint16(f.NumValuesPassed))...)
	out = append(out, putU16(uint16(len(locals)))...)
	for _, v := range locals {
		out = append(out, putU16(v)...)
	}
	out = append(out, putU16(uint16(len(stack)))...)
	for _, v := range stack {
		out = append(out, putU16(v)...)
	}
	return out
}

func deserializeFrame(data []byte) (variables.Frame, int, bool) {
	if len(data) < 10 {
		return variables.Frame{}, 0, false
	}
	offset := 0
	pc := getU32(data[offset:])
	offset += 4
	storesResult := data[offset] == 1
	offset++
	returnDestVar := data[offset]
	offset++
	numValuesPassed := int(getU16(data[offset:]))
	offset += 2

	localCount := int(getU16(data[offset:]))
	offset += 2
	if len(data) < offset+localCount*2+2 {
		return variables.Frame{}, 0, false
	}
	locals := make([]uint16, localCount)
	for i := range locals {
		locals[i] = getU16(data[offset:])
		offset += 2
	}

	stackSize := int(getU16(data[offset:]))
	offset += 2
	if len(data) < offset+stackSize*2 {
		return variables.Frame{}, 0, false
	}
	stack := make([]uint16, stackSize)
	for i := range stack {
		stack[i] = getU16(data[offset:])
		offset += 2
	}

	return variables.RestoreFrame(pc, locals, stack, storesResult, numValuesPassed, returnDestVar), offset, true
}

func putU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func putU16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func getU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func getU16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
