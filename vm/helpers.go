package vm

import (
	"zvm/dictionary"
	"zvm/zfault"
)

func zfaultDivideByZero(divisor uint16) error {
	return zfault.New(zfault.DivideByZero, "division by zero").WithOperand(uint32(divisor))
}

// rollRandom implements the random opcode's full argument convention
// directly against the host.RNG interface (zvmrand.Roll takes the concrete
// generator type, which a VM built over a different host.RNG couldn't
// use): n>0 draws a value in [1,n], n==0 reseeds unpredictably and returns
// 0, n<0 reseeds deterministically from n and returns 0.
func (vm *VM) rollRandom(n int16) uint16 {
	switch {
	case n > 0:
		return uint16(vm.RNG.Int31n(int32(n))) + 1
	case n == 0:
		vm.RNG.SeedFromClock()
		return 0
	default:
		vm.RNG.Seed(int64(n))
		return 0
	}
}

// writeParseBuffer encodes tokens into the parse buffer layout sread and
// tokenise share: a token count byte, then 4 bytes per token (dictionary
// address word, text length, position in the text buffer). leaveUnparsed
// keeps an unrecognized word's existing dictionary-address slot untouched
// instead of zeroing it, per tokenise's optional fourth "flag" argument.
func (vm *VM) writeParseBuffer(parseBuf uint32, textStart uint32, tokens []dictionary.Token, leaveUnparsed bool) error {
	maxTokens, err := vm.Mem.ReadU8(parseBuf)
	if err != nil {
		return err
	}
	if len(tokens) > int(maxTokens) {
		tokens = tokens[:maxTokens]
	}
	if err := vm.Mem.WriteU8(parseBuf+1, uint8(len(tokens))); err != nil {
		return err
	}

	ptr := parseBuf + 2
	for _, tok := range tokens {
		if !(leaveUnparsed && tok.DictAddr == 0) {
			if err := vm.Mem.WriteU16(ptr, tok.DictAddr); err != nil {
				return err
			}
		}
		if err := vm.Mem.WriteU8(ptr+2, uint8(len(tok.Text))); err != nil {
			return err
		}
		if err := vm.Mem.WriteU8(ptr+3, uint8(textStart+uint32(tok.Position))); err != nil {
			return err
		}
		ptr += 4
	}
	return nil
}
