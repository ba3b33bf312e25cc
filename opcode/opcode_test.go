package opcode_test

import (
	"testing"

	"zvm/opcode"
	"zvm/zfault"
)

func TestLookupKnownOpcode(t *testing.T) {
	m, err := opcode.Lookup(opcode.Form2OP, 0x14, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Mnemonic != "add" {
		t.Errorf("expected add, got %s", m.Mnemonic)
	}
	if !m.DoesStore {
		t.Errorf("add should store a result")
	}
}

func TestLookupUndefinedOpcode(t *testing.T) {
	_, err := opcode.Lookup(opcode.Form0OP, 0x05, 3)
	if err == nil {
		t.Fatal("expected UndefinedOpcode fault")
	}
	if f, ok := err.(*zfault.Fault); !ok || f.Kind != zfault.UndefinedOpcode {
		t.Errorf("expected UndefinedOpcode, got %v", err)
	}
}

func TestLookupVersionMismatch(t *testing.T) {
	// verify is a 0OP opcode introduced at version 3.
	_, err := opcode.Lookup(opcode.Form0OP, 0x0D, 1)
	if err == nil {
		t.Fatal("expected VersionMismatch fault")
	}
	if f, ok := err.(*zfault.Fault); !ok || f.Kind != zfault.VersionMismatch {
		t.Errorf("expected VersionMismatch, got %v", err)
	}

	m, err := opcode.Lookup(opcode.Form0OP, 0x0D, 3)
	if err != nil {
		t.Fatalf("unexpected error at version 3: %v", err)
	}
	if m.Mnemonic != "verify" {
		t.Errorf("expected verify, got %s", m.Mnemonic)
	}
}

func TestLookupEXTFormVersionFloor(t *testing.T) {
	_, err := opcode.Lookup(opcode.FormEXT, 0x09, 4)
	if err == nil {
		t.Fatal("expected VersionMismatch for save_undo below version 5")
	}

	m, err := opcode.Lookup(opcode.FormEXT, 0x09, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Mnemonic != "save_undo" {
		t.Errorf("expected save_undo, got %s", m.Mnemonic)
	}
}

// TestTablePositionConsistency re-verifies the invariant enforced by
// checkTableConsistency at init time: every defined entry's Opcode field
// must equal its slot. Lookup's own bounds checking would mask a silent
// transposition, so this walks all five forms directly through Lookup at
// every version and confirms the returned metadata's Opcode and Form match
// what was asked for.
func TestTablePositionConsistency(t *testing.T) {
	forms := []opcode.Form{opcode.Form0OP, opcode.Form1OP, opcode.Form2OP, opcode.FormVAR, opcode.FormEXT}
	for _, form := range forms {
		for op := uint8(0); op < 32; op++ {
			for version := uint8(1); version <= 8; version++ {
				m, err := opcode.Lookup(form, op, version)
				if err != nil {
					continue
				}
				if m.Opcode != op {
					t.Fatalf("%s opcode %d: metadata claims opcode %d", form, op, m.Opcode)
				}
				if m.Form != form {
					t.Fatalf("%s opcode %d: metadata claims form %s", form, op, m.Form)
				}
			}
		}
	}
}
