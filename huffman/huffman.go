// Package huffman implements a static order-0 Huffman coder for byte streams.
//
// Encode scans the whole input once, builds a Huffman tree with a
// deterministic tie-break, and packs the code of every byte MSB-first into a
// payload. The accompanying header stores the symbol frequencies and the
// number of valid payload bits, which lets Decode rebuild the identical tree
// and ignore the padding in the last payload byte.
package huffman

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/egonelbre/exp-huffman-coding/bitstream"
)

// Encode compresses data and returns the header and the packed payload.
//
// Empty input produces a header describing zero symbols and an empty payload.
func Encode(data []byte) (header, payload []byte) {
	return encode(data, Count(data))
}

// EncodeParallel is Encode with the frequency count split over shards
// goroutines. The output is identical to Encode.
func EncodeParallel(ctx context.Context, data []byte, shards int) (header, payload []byte, err error) {
	ft, err := CountParallel(ctx, data, shards)
	if err != nil {
		return nil, nil, err
	}
	header, payload = encode(data, ft)
	return header, payload, nil
}

func encode(data []byte, ft *FrequencyTable) (header, payload []byte) {
	h := &Header{Freqs: ft}

	if ft.Len() > 0 {
		tree, err := BuildTree(ft)
		if err != nil {
			panic(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
		}
		payload, h.Bits = encodePayload(data, tree.Codes())
	}

	header, err := h.MarshalBinary()
	if err != nil {
		panic(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
	}
	return header, payload
}

func encodePayload(data []byte, codes *CodeTable) ([]byte, uint64) {
	w := bitstream.NewWriter()
	for _, b := range data {
		code, ok := codes.Lookup(b)
		if !ok {
			panic(fmt.Errorf("%w: symbol %d has no code", ErrInternalInvariant, b))
		}
		if err := w.WriteBits(code.Bits, code.Len); err != nil {
			panic(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
		}
	}
	payload, n, err := w.Finish()
	if err != nil {
		panic(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
	}
	return payload, n
}

// Decode reconstructs the original bytes from a header and payload produced
// by Encode.
func Decode(header, payload []byte) ([]byte, error) {
	h, tree, n, err := readHeader(header)
	if err != nil {
		return nil, err
	}
	if n != len(header) {
		return nil, headerError("trailing data", "%d unexpected bytes", len(header)-n)
	}
	return decodePayload(h, tree, payload)
}

func decodePayload(h *Header, tree *Tree, payload []byte) ([]byte, error) {
	if tree == nil {
		if len(payload) != 0 {
			return nil, fmt.Errorf("%w: %d bytes for empty input", ErrCorruptPayload, len(payload))
		}
		return []byte{}, nil
	}

	r, err := bitstream.NewReader(payload, h.Bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}

	// readHeader guarantees Bits >= Total, and NewReader that the payload
	// holds Bits, so Total is bounded by the payload size.
	out := make([]byte, 0, h.Freqs.Total())

	root := tree.Root()
	if tree.IsLeaf(root) {
		sym := tree.Symbol(root)
		for {
			bit, err := r.ReadBit()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
			}
			if bit != 0 {
				return nil, fmt.Errorf("%w: bit %d: expected 0 for single-symbol input", ErrCorruptPayload, len(out))
			}
			out = append(out, sym)
		}
	} else {
		id := root
		for {
			bit, err := r.ReadBit()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
			}
			id = tree.Child(id, bit)
			if tree.IsLeaf(id) {
				out = append(out, tree.Symbol(id))
				id = root
			}
		}
		if id != root {
			return nil, fmt.Errorf("%w: bits exhausted inside a code after %d symbols", ErrCorruptPayload, len(out))
		}
	}

	if uint64(len(out)) != h.Freqs.Total() {
		return nil, fmt.Errorf("%w: decoded %d symbols, header describes %d", ErrCorruptPayload, len(out), h.Freqs.Total())
	}
	got := Count(out)
	for _, sym := range h.Freqs.Symbols() {
		want, _ := h.Freqs.Count(sym)
		if n, _ := got.Count(sym); n != want {
			return nil, fmt.Errorf("%w: symbol %d decoded %d times, header describes %d", ErrCorruptPayload, sym, n, want)
		}
	}
	return out, nil
}
