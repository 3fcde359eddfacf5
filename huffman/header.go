package huffman

import (
	"fmt"
	"math/bits"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	headerMagic   = "HF"
	headerVersion = 1
)

// Header describes a payload well enough to decode it without any other
// information.
//
// The wire form is
//
//	"HF" version:byte N:varint {symbol:byte frequency:varint}×N bits:varint
//
// with varints in protobuf base-128 encoding and symbols strictly ascending.
// The decoder rebuilds the tree from the frequencies with BuildTree.
type Header struct {
	// Freqs holds the symbol frequencies of the original input.
	Freqs *FrequencyTable
	// Bits is the number of valid bits in the payload.
	Bits uint64
}

// AppendBinary appends the wire form of h to b.
func (h *Header) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, headerMagic...)
	b = append(b, headerVersion)
	b = protowire.AppendVarint(b, uint64(h.Freqs.Len()))
	for _, sym := range h.Freqs.Symbols() {
		n, _ := h.Freqs.Count(sym)
		b = append(b, sym)
		b = protowire.AppendVarint(b, n)
	}
	b = protowire.AppendVarint(b, h.Bits)
	return b, nil
}

// MarshalBinary returns the wire form of h.
func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(nil)
}

// ParseHeader parses and validates a header occupying all of b.
func ParseHeader(b []byte) (*Header, error) {
	h, _, n, err := readHeader(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, headerError("trailing data", "%d unexpected bytes", len(b)-n)
	}
	return h, nil
}

func headerError(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidHeader, field, fmt.Sprintf(format, args...))
}

// readHeader parses the header at the start of b and returns it together
// with the rebuilt tree (nil for empty input) and the number of bytes read.
func readHeader(b []byte) (*Header, *Tree, int, error) {
	pos := 0

	if len(b) < len(headerMagic) || string(b[:len(headerMagic)]) != headerMagic {
		return nil, nil, 0, headerError("magic", "expected %q", headerMagic)
	}
	pos += len(headerMagic)

	if pos >= len(b) {
		return nil, nil, 0, headerError("version", "truncated")
	}
	if b[pos] != headerVersion {
		return nil, nil, 0, headerError("version", "unsupported version %d", b[pos])
	}
	pos++

	count, n := protowire.ConsumeVarint(b[pos:])
	if n < 0 {
		return nil, nil, 0, headerError("symbol count", "%v", protowire.ParseError(n))
	}
	if count > 256 {
		return nil, nil, 0, headerError("symbol count", "%d exceeds 256", count)
	}
	pos += n

	counts := make(map[byte]uint64, count)
	var total uint64
	var prev byte
	for i := 0; i < int(count); i++ {
		if pos >= len(b) {
			return nil, nil, 0, headerError("symbol", "entry %d of %d truncated", i, count)
		}
		sym := b[pos]
		if i > 0 && sym <= prev {
			return nil, nil, 0, headerError("symbol", "entry %d: symbol %d out of order", i, sym)
		}
		prev = sym
		pos++

		freq, n := protowire.ConsumeVarint(b[pos:])
		if n < 0 {
			return nil, nil, 0, headerError("frequency", "symbol %d: %v", sym, protowire.ParseError(n))
		}
		if freq == 0 {
			return nil, nil, 0, headerError("frequency", "symbol %d: zero frequency", sym)
		}
		var carry uint64
		total, carry = bits.Add64(total, freq, 0)
		if carry != 0 {
			return nil, nil, 0, headerError("frequency", "symbol %d: total overflows", sym)
		}
		pos += n
		counts[sym] = freq
	}

	nbits, n := protowire.ConsumeVarint(b[pos:])
	if n < 0 {
		return nil, nil, 0, headerError("bit count", "%v", protowire.ParseError(n))
	}
	pos += n

	freqs, err := NewFrequencyTable(counts)
	if err != nil {
		return nil, nil, 0, headerError("frequency", "%v", err)
	}
	h := &Header{Freqs: freqs, Bits: nbits}

	if freqs.Len() == 0 {
		if nbits != 0 {
			return nil, nil, 0, headerError("bit count", "%d bits for empty input", nbits)
		}
		return h, nil, pos, nil
	}

	tree, err := BuildTree(freqs)
	if err != nil {
		return nil, nil, 0, headerError("symbol count", "%v", err)
	}
	want, ok := encodedBits(tree, freqs)
	if !ok {
		return nil, nil, 0, headerError("bit count", "payload size overflows")
	}
	if nbits != want {
		return nil, nil, 0, headerError("bit count", "got %d, frequencies require %d", nbits, want)
	}

	return h, tree, pos, nil
}

// encodedBits computes Σ freq×depth over the tree, reporting overflow.
func encodedBits(t *Tree, ft *FrequencyTable) (uint64, bool) {
	var total uint64
	for sym, depth := range t.Depths() {
		freq, _ := ft.Count(sym)
		hi, lo := bits.Mul64(freq, uint64(depth))
		if hi != 0 {
			return 0, false
		}
		var carry uint64
		total, carry = bits.Add64(total, lo, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}
