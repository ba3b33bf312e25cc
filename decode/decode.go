package decode

import (
	"zvm/memory"
	"zvm/opcode"
)

type cursor struct {
	mem *memory.Memory
	pc  uint32
}

func (c *cursor) readByte() (uint8, error) {
	b, err := c.mem.ReadU8(c.pc)
	if err != nil {
		return 0, err
	}
	c.pc++
	return b, nil
}

func (c *cursor) readWord() (uint16, error) {
	w, err := c.mem.ReadU16(c.pc)
	if err != nil {
		return 0, err
	}
	c.pc += 2
	return w, nil
}

// Decode reads one instruction starting at pc, per spec.md §4.4/§4.5: it
// determines the instruction's form from the opcode byte (long, short,
// variable, or the 0xBE extended escape on version 5+), decodes that
// form's operands, and, if the resolved opcode metadata calls for them,
// consumes a trailing store-variable byte and/or branch specifier.
func Decode(mem *memory.Memory, pc uint32, version uint8) (*Instruction, error) {
	c := &cursor{mem: mem, pc: pc}
	addr := pc

	opcodeByte, err := c.readByte()
	if err != nil {
		return nil, err
	}

	var form opcode.Form
	var opcodeNumber uint8
	var operands []Operand

	switch {
	case opcodeByte == 0xbe && version >= 5:
		form = opcode.FormEXT
		opcodeNumber, err = c.readByte()
		if err != nil {
			return nil, err
		}
		operands, err = decodeVariableOperands(c, form, opcodeNumber)
		if err != nil {
			return nil, err
		}

	case opcodeByte>>6 == 0b11: // variable form
		form = opcode.FormVAR
		opcodeNumber = opcodeByte & 0b1_1111
		if (opcodeByte>>5)&1 == 0 {
			form = opcode.Form2OP
		}
		operands, err = decodeVariableOperands(c, form, opcodeNumber)
		if err != nil {
			return nil, err
		}

	case opcodeByte>>6 == 0b10: // short form
		form = opcode.Form1OP
		opcodeNumber = opcodeByte & 0b1111
		operandType := (opcodeByte >> 4) & 0b11
		switch operandType {
		case 0b00:
			w, err := c.readWord()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindLarge, Value: w})
		case 0b01:
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindSmall, Value: uint16(b)})
		case 0b10:
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindVar, Value: uint16(b)})
		case 0b11:
			form = opcode.Form0OP
		}

	default: // long form, always 2OP
		form = opcode.Form2OP
		opcodeNumber = opcodeByte & 0b1_1111
		kind1, kind2 := opcode.KindSmall, opcode.KindSmall
		if (opcodeByte>>6)&1 == 1 {
			kind1 = opcode.KindVar
		}
		if (opcodeByte>>5)&1 == 1 {
			kind2 = opcode.KindVar
		}
		for _, k := range []opcode.OperandKind{kind1, kind2} {
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: k, Value: uint16(b)})
		}
	}

	meta, err := opcode.Lookup(form, opcodeNumber, version)
	if err != nil {
		return nil, err
	}

	inst := &Instruction{Addr: addr, Meta: meta, Operands: operands}

	if meta.DoesStore {
		inst.StoreVar, err = c.readByte()
		if err != nil {
			return nil, err
		}
	}

	if meta.DoesBranch {
		branch, err := decodeBranch(c)
		if err != nil {
			return nil, err
		}
		inst.Branch = branch
	}

	inst.NextPC = c.pc
	return inst, nil
}

// decodeVariableOperands implements the variable/extended-form operand
// type byte (two bits per operand, 0b11 terminates early). call_vs2 and
// call_vn2 carry a second type byte extending the operand count from 4 to
// 8, per spec.md §4.4.
func decodeVariableOperands(c *cursor, form opcode.Form, opcodeNumber uint8) ([]Operand, error) {
	typeByte, err := c.readByte()
	if err != nil {
		return nil, err
	}

	extendedTypeByte := uint8(0)
	maxOperands := 4
	if form == opcode.FormVAR && (opcodeNumber == 0x0C || opcodeNumber == 0x1A) {
		extendedTypeByte, err = c.readByte()
		if err != nil {
			return nil, err
		}
		maxOperands = 8
	}

	var operands []Operand
	for i := 0; i < maxOperands; i++ {
		var kindBits uint8
		if i < 4 {
			kindBits = (typeByte >> uint(2*(3-i))) & 0b11
		} else {
			kindBits = (extendedTypeByte >> uint(2*(7-i))) & 0b11
		}

		switch kindBits {
		case 0b00:
			w, err := c.readWord()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindLarge, Value: w})
		case 0b01:
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindSmall, Value: uint16(b)})
		case 0b10:
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			operands = append(operands, Operand{Kind: opcode.KindVar, Value: uint16(b)})
		case 0b11:
			return operands, nil
		}
	}
	return operands, nil
}

// decodeBranch implements the one- or two-byte branch specifier of
// spec.md §4.5.
func decodeBranch(c *cursor) (*Branch, error) {
	first, err := c.readByte()
	if err != nil {
		return nil, err
	}

	onTrue := (first>>7)&1 == 1
	singleByte := (first>>6)&1 == 1
	offset := int32(first & 0b0011_1111)

	if !singleByte {
		second, err := c.readByte()
		if err != nil {
			return nil, err
		}
		raw := uint16(first&0b0011_1111)<<8 | uint16(second)
		offset = int32(int16(raw<<2) >> 2)
	}

	return &Branch{OnTrue: onTrue, Offset: offset}, nil
}
