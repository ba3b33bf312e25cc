package decode_test

import (
	"testing"

	"zvm/decode"
	"zvm/memory"
	"zvm/opcode"
)

func TestDecodeShortForm1OPLargeConstant(t *testing.T) {
	// 0x80 = short form (10), operand type 00 (large constant), opcode 0
	// (jz). Two-byte operand 0x1234 follows, then the one-byte branch
	// specifier 0xC0 (branch on true, offset 0).
	mem := memory.New([]uint8{0x80, 0x12, 0x34, 0xC0, 0x05}, 5)

	inst, err := decode.Decode(mem, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Meta.Mnemonic != "jz" {
		t.Errorf("expected jz, got %s", inst.Meta.Mnemonic)
	}
	if len(inst.Operands) != 1 || inst.Operands[0].Kind != opcode.KindLarge || inst.Operands[0].Value != 0x1234 {
		t.Errorf("unexpected operands: %+v", inst.Operands)
	}
	if inst.Branch == nil {
		t.Fatal("expected branch trailer for jz")
	}
	if !inst.Branch.OnTrue {
		t.Errorf("expected branch-on-true bit set")
	}
	if inst.NextPC != 4 {
		t.Errorf("expected NextPC 4, got %d", inst.NextPC)
	}
}

func TestDecodeLongForm2OPStoresResult(t *testing.T) {
	// 0xD4 = 11010100: bits 6,5 are 1,0 -> long form would need top bits
	// 0b0x; use a genuine long-form byte instead. Long form top two bits
	// are never both 1 (that's variable form), so 0x54 = 01010100:
	// operand1 variable (bit6=1), operand2 small constant (bit5=0),
	// opcode number 0b10100 = 20 (add).
	mem := memory.New([]uint8{0x54, 0x02, 0x05, 0x10}, 4)

	inst, err := decode.Decode(mem, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Meta.Mnemonic != "add" {
		t.Errorf("expected add, got %s", inst.Meta.Mnemonic)
	}
	if len(inst.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(inst.Operands))
	}
	if inst.Operands[0].Kind != opcode.KindVar || inst.Operands[0].Value != 2 {
		t.Errorf("unexpected operand 0: %+v", inst.Operands[0])
	}
	if inst.Operands[1].Kind != opcode.KindSmall || inst.Operands[1].Value != 5 {
		t.Errorf("unexpected operand 1: %+v", inst.Operands[1])
	}
	if !inst.Meta.DoesStore {
		t.Fatal("add should store")
	}
	if inst.StoreVar != 0x10 {
		t.Errorf("expected store var 0x10, got 0x%x", inst.StoreVar)
	}
	if inst.NextPC != 4 {
		t.Errorf("expected NextPC 4, got %d", inst.NextPC)
	}
}

func TestDecodeVariableFormCall(t *testing.T) {
	// 0xE0 = variable form (11), bit5=1 -> VAR operand count, opcode
	// number 0 (call). Type byte 0x3F = large,omitted,omitted,omitted.
	mem := memory.New([]uint8{0xE0, 0x3F, 0x00, 0x10, 0x00}, 5)

	inst, err := decode.Decode(mem, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Meta.Mnemonic != "call" {
		t.Errorf("expected call, got %s", inst.Meta.Mnemonic)
	}
	if len(inst.Operands) != 1 {
		t.Fatalf("expected 1 operand (rest omitted), got %d", len(inst.Operands))
	}
	if inst.Operands[0].Kind != opcode.KindLarge || inst.Operands[0].Value != 0x10 {
		t.Errorf("unexpected operand: %+v", inst.Operands[0])
	}
}

func TestDecodeBranchTwoByteNegativeOffset(t *testing.T) {
	// jz (short form, small constant operand) with a two-byte branch:
	// high bit clear (branch on false), bit6 clear (two-byte), 14-bit
	// offset encoding -1 relative to the usual -2 adjustment convention.
	mem := memory.New([]uint8{0x90, 0x00, 0b0011_1111, 0b1111_1111}, 4)

	inst, err := decode.Decode(mem, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Branch == nil {
		t.Fatal("expected branch")
	}
	if inst.Branch.OnTrue {
		t.Errorf("expected branch-on-false")
	}
	if inst.Branch.IsReturn() {
		t.Errorf("did not expect a return-convention offset")
	}
}

func TestDecodeBranchSpecialReturnConventions(t *testing.T) {
	mem := memory.New([]uint8{0x90, 0x00, 0b1100_0000}, 3)

	inst, err := decode.Decode(mem, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inst.Branch.IsReturn() {
		t.Fatal("expected offset 0 to be the return-false convention")
	}
	if inst.Branch.ReturnValue() != 0 {
		t.Errorf("expected return value 0, got %d", inst.Branch.ReturnValue())
	}
}

func TestDecodeExtendedFormOnV5(t *testing.T) {
	// 0xBE escape, opcode number 3 (art_shift), type byte 0b01_01_11_11
	// (two small constant operands).
	mem := memory.New([]uint8{0xBE, 0x03, 0b0101_1111, 0x05, 0x02, 0x10}, 6)

	inst, err := decode.Decode(mem, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Meta.Mnemonic != "art_shift" {
		t.Errorf("expected art_shift, got %s", inst.Meta.Mnemonic)
	}
	if len(inst.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(inst.Operands))
	}
}

func TestDecodeRejectsExtendedFormBelowV5(t *testing.T) {
	mem := memory.New([]uint8{0xBE, 0x03, 0x00}, 3)

	if _, err := decode.Decode(mem, 0, 3); err == nil {
		t.Fatal("expected the 0xBE byte to decode as an ordinary (non-extended) opcode below v5 and fail lookup")
	}
}
