package huffman

import (
	"fmt"
	"strings"
)

// MaxCodeLen is the longest code a CodeTable can hold.
const MaxCodeLen = 64

// Code is a prefix code word. The first bit of the code is bit Len-1 of Bits.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	var b strings.Builder
	for i := int(c.Len) - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(c.Bits>>uint(i)&1))
	}
	return b.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// CodeTable maps symbols to their codes.
type CodeTable struct {
	codes   [256]Code
	symbols []byte
}

// Codes walks the tree and assigns each leaf the path leading to it,
// 0 for a left descent and 1 for a right descent.
//
// A tree consisting of a single leaf assigns that symbol the code "0".
func (t *Tree) Codes() *CodeTable {
	if len(t.nodes) == 0 {
		panic(fmt.Errorf("%w: tree has no leaves", ErrInternalInvariant))
	}

	ct := &CodeTable{}
	if t.IsLeaf(t.root) {
		ct.set(t.Symbol(t.root), Code{Bits: 0, Len: 1})
		ct.sortSymbols()
		return ct
	}

	var walk func(id NodeID, code Code)
	walk = func(id NodeID, code Code) {
		if t.IsLeaf(id) {
			ct.set(t.Symbol(id), code)
			return
		}
		if code.Len == MaxCodeLen {
			panic(fmt.Errorf("%w: code longer than %d bits", ErrInternalInvariant, MaxCodeLen))
		}
		left, right := t.Children(id)
		walk(left, Code{Bits: code.Bits << 1, Len: code.Len + 1})
		walk(right, Code{Bits: code.Bits<<1 | 1, Len: code.Len + 1})
	}
	walk(t.root, Code{})

	ct.sortSymbols()
	return ct
}

func (ct *CodeTable) set(sym byte, code Code) {
	if ct.codes[sym].Len != 0 {
		panic(fmt.Errorf("%w: symbol %d appears in two leaves", ErrInternalInvariant, sym))
	}
	ct.codes[sym] = code
}

func (ct *CodeTable) sortSymbols() {
	ct.symbols = ct.symbols[:0]
	for i, c := range ct.codes {
		if c.Len > 0 {
			ct.symbols = append(ct.symbols, byte(i))
		}
	}
}

// Lookup returns the code of sym and whether sym has one.
func (ct *CodeTable) Lookup(sym byte) (Code, bool) {
	c := ct.codes[sym]
	return c, c.Len > 0
}

// Symbols returns the symbols with a code, in ascending order.
func (ct *CodeTable) Symbols() []byte {
	return append([]byte(nil), ct.symbols...)
}

// EncodedBits returns Σ freq(s)×len(code(s)), the number of payload bits
// needed to encode an input with frequencies ft.
func (ct *CodeTable) EncodedBits(ft *FrequencyTable) uint64 {
	var total uint64
	for _, sym := range ft.Symbols() {
		n, _ := ft.Count(sym)
		total += n * uint64(ct.codes[sym].Len)
	}
	return total
}

// String formats the table as "sym=code" pairs in symbol order.
func (ct *CodeTable) String() string {
	parts := make([]string, 0, len(ct.symbols))
	for _, sym := range ct.symbols {
		parts = append(parts, fmt.Sprintf("%q=%v", sym, ct.codes[sym]))
	}
	return "codes[" + strings.Join(parts, ", ") + "]"
}
