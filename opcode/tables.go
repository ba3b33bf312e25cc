package opcode

import "zvm/zfault"

// The five sparse tables of spec.md §3. Index is the opcode number within
// the form; a nil entry means "unimplemented / illegal at this version".
// A few entries (je, dec_chk, inc_chk, store, the arithmetic family) also
// record OperandKinds; decode does not consult them, and every opcode's
// operands are decoded from the instruction's encoded operand type bits.
var (
	table0OP [16]*Metadata
	table1OP [16]*Metadata
	table2OP [32]*Metadata
	tableVAR [32]*Metadata
	tableEXT [32]*Metadata
)

func init() {
	def := func(table []*Metadata, form Form, opcode uint8, mnemonic string, minV, maxV uint8, kinds []OperandKind, store, branch bool) {
		m := &Metadata{
			Mnemonic:     mnemonic,
			Form:         form,
			Opcode:       opcode,
			MinVersion:   minV,
			MaxVersion:   maxV,
			OperandKinds: kinds,
			DoesStore:    store,
			DoesBranch:   branch,
		}
		table[opcode] = m
	}

	// 0OP
	def(table0OP[:], Form0OP, 0x00, "rtrue", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x01, "rfalse", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x02, "print", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x03, "print_ret", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x04, "nop", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x08, "ret_popped", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x09, "pop", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x0A, "quit", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x0B, "new_line", 0, 0, nil, false, false)
	def(table0OP[:], Form0OP, 0x0C, "show_status", 0, 3, nil, false, false)
	def(table0OP[:], Form0OP, 0x0D, "verify", 3, 0, nil, false, true)
	def(table0OP[:], Form0OP, 0x0F, "piracy", 5, 0, nil, false, true)

	// 1OP
	def(table1OP[:], Form1OP, 0x00, "jz", 0, 0, nil, false, true)
	def(table1OP[:], Form1OP, 0x01, "get_sibling", 0, 0, nil, true, true)
	def(table1OP[:], Form1OP, 0x02, "get_child", 0, 0, nil, true, true)
	def(table1OP[:], Form1OP, 0x03, "get_parent", 0, 0, nil, true, false)
	def(table1OP[:], Form1OP, 0x04, "get_prop_len", 0, 0, nil, true, false)
	def(table1OP[:], Form1OP, 0x05, "inc", 0, 0, []OperandKind{KindSmall}, false, false)
	def(table1OP[:], Form1OP, 0x06, "dec", 0, 0, []OperandKind{KindSmall}, false, false)
	def(table1OP[:], Form1OP, 0x07, "print_addr", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x08, "call_1s", 4, 0, nil, true, false)
	def(table1OP[:], Form1OP, 0x09, "remove_obj", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x0A, "print_obj", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x0B, "ret", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x0C, "jump", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x0D, "print_paddr", 0, 0, nil, false, false)
	def(table1OP[:], Form1OP, 0x0E, "load", 5, 0, []OperandKind{KindSmall}, true, false)
	def(table1OP[:], Form1OP, 0x0F, "not", 0, 4, nil, true, false)

	// 2OP
	def(table2OP[:], Form2OP, 0x01, "je", 0, 0, []OperandKind{KindVar, KindVar}, false, true)
	def(table2OP[:], Form2OP, 0x02, "jl", 0, 0, nil, false, true)
	def(table2OP[:], Form2OP, 0x03, "jg", 0, 0, nil, false, true)
	def(table2OP[:], Form2OP, 0x04, "dec_chk", 0, 0, []OperandKind{KindSmall, KindVar}, false, true)
	def(table2OP[:], Form2OP, 0x05, "inc_chk", 0, 0, []OperandKind{KindSmall, KindVar}, false, true)
	def(table2OP[:], Form2OP, 0x06, "jin", 0, 0, nil, false, true)
	def(table2OP[:], Form2OP, 0x07, "test", 0, 0, nil, false, true)
	def(table2OP[:], Form2OP, 0x08, "or", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x09, "and", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x0A, "test_attr", 0, 0, nil, false, true)
	def(table2OP[:], Form2OP, 0x0B, "set_attr", 0, 0, nil, false, false)
	def(table2OP[:], Form2OP, 0x0C, "clear_attr", 0, 0, nil, false, false)
	def(table2OP[:], Form2OP, 0x0D, "store", 0, 0, []OperandKind{KindSmall, KindVar}, false, false)
	def(table2OP[:], Form2OP, 0x0E, "insert_obj", 0, 0, nil, false, false)
	def(table2OP[:], Form2OP, 0x0F, "loadw", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x10, "loadb", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x11, "get_prop", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x12, "get_prop_addr", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x13, "get_next_prop", 0, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x14, "add", 0, 0, []OperandKind{KindVar, KindVar}, true, false)
	def(table2OP[:], Form2OP, 0x15, "sub", 0, 0, []OperandKind{KindVar, KindVar}, true, false)
	def(table2OP[:], Form2OP, 0x16, "mul", 0, 0, []OperandKind{KindVar, KindVar}, true, false)
	def(table2OP[:], Form2OP, 0x17, "div", 0, 0, []OperandKind{KindVar, KindVar}, true, false)
	def(table2OP[:], Form2OP, 0x18, "mod", 0, 0, []OperandKind{KindVar, KindVar}, true, false)
	def(table2OP[:], Form2OP, 0x19, "call_2s", 4, 0, nil, true, false)
	def(table2OP[:], Form2OP, 0x1A, "call_2n", 5, 0, nil, false, false)
	def(table2OP[:], Form2OP, 0x1B, "set_colour", 5, 0, nil, false, false)
	def(table2OP[:], Form2OP, 0x1C, "throw", 5, 0, nil, false, false)

	// VAR
	def(tableVAR[:], FormVAR, 0x00, "call", 0, 0, nil, true, false)
	def(tableVAR[:], FormVAR, 0x01, "storew", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x02, "storeb", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x03, "put_prop", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x04, "sread", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x05, "print_char", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x06, "print_num", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x07, "random", 0, 0, nil, true, false)
	def(tableVAR[:], FormVAR, 0x08, "push", 0, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x09, "pull", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x0A, "split_window", 3, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x0B, "set_window", 3, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x0C, "call_vs2", 4, 0, nil, true, false)
	def(tableVAR[:], FormVAR, 0x0D, "erase_window", 4, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x0F, "set_cursor", 4, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x11, "set_text_style", 4, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x12, "buffer_mode", 4, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x13, "output_stream", 3, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x14, "input_stream", 3, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x16, "read_char", 4, 0, nil, true, false)
	def(tableVAR[:], FormVAR, 0x17, "scan_table", 4, 0, nil, true, true)
	def(tableVAR[:], FormVAR, 0x18, "not", 5, 0, nil, true, false)
	def(tableVAR[:], FormVAR, 0x19, "call_vn", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1A, "call_vn2", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1B, "tokenise", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1C, "encode_text", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1D, "copy_table", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1E, "print_table", 5, 0, nil, false, false)
	def(tableVAR[:], FormVAR, 0x1F, "check_arg_count", 5, 0, nil, false, true)

	// EXT
	def(tableEXT[:], FormEXT, 0x02, "log_shift", 5, 0, nil, true, false)
	def(tableEXT[:], FormEXT, 0x03, "art_shift", 5, 0, nil, true, false)
	def(tableEXT[:], FormEXT, 0x04, "set_font", 5, 0, nil, true, false)
	def(tableEXT[:], FormEXT, 0x09, "save_undo", 5, 0, nil, true, false)
	def(tableEXT[:], FormEXT, 0x0A, "restore_undo", 5, 0, nil, true, false)
	def(tableEXT[:], FormEXT, 0x0B, "print_unicode", 5, 0, nil, false, false)
	def(tableEXT[:], FormEXT, 0x0C, "check_unicode", 5, 0, nil, true, false)

	checkTableConsistency(table0OP[:], Form0OP)
	checkTableConsistency(table1OP[:], Form1OP)
	checkTableConsistency(table2OP[:], Form2OP)
	checkTableConsistency(tableVAR[:], FormVAR)
	checkTableConsistency(tableEXT[:], FormEXT)
}

// checkTableConsistency enforces spec.md's P6 invariant at package init
// time: for every defined entry T[i], T[i].opcode==i and T[i].form matches
// the table. A violation here is a programming error in this file, not a
// story-file fault, so it panics the way the teacher panics on
// "interpreter bug, not story's fault" conditions.
func checkTableConsistency(table []*Metadata, form Form) {
	for i, m := range table {
		if m == nil {
			continue
		}
		if int(m.Opcode) != i {
			panic("opcode table entry position mismatch: " + m.Mnemonic)
		}
		if m.Form != form {
			panic("opcode table entry form mismatch: " + m.Mnemonic)
		}
	}
}

func tableFor(form Form) ([]*Metadata, error) {
	switch form {
	case Form0OP:
		return table0OP[:], nil
	case Form1OP:
		return table1OP[:], nil
	case Form2OP:
		return table2OP[:], nil
	case FormVAR:
		return tableVAR[:], nil
	case FormEXT:
		return tableEXT[:], nil
	default:
		return nil, zfault.New(zfault.UndefinedOpcode, "unknown instruction form")
	}
}

// Lookup returns the metadata for (form, opcode) if defined and the current
// story version falls within its supported range, per spec.md §4.4.
func Lookup(form Form, opcodeNumber uint8, version uint8) (*Metadata, error) {
	table, err := tableFor(form)
	if err != nil {
		return nil, err
	}
	if int(opcodeNumber) >= len(table) || table[opcodeNumber] == nil {
		return nil, zfault.New(zfault.UndefinedOpcode, "no metadata for opcode").WithOperand(uint32(opcodeNumber))
	}

	m := table[opcodeNumber]
	if !m.InVersion(version) {
		return nil, zfault.New(zfault.VersionMismatch, "opcode not defined at this story version").WithOperand(uint32(opcodeNumber))
	}
	return m, nil
}
