// Package bitstream packs individual bits into bytes and reads them back.
//
// Bits are stored MSB-first: the first bit written is the most significant
// bit of the first byte. The last byte is padded with zero bits, and the
// number of valid bits is tracked separately so padding is never read as data.
package bitstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

var (
	// ErrShortBuffer is returned when a buffer holds fewer bytes than the
	// valid bit count requires.
	ErrShortBuffer = errors.New("bitstream: buffer shorter than bit count")
	// ErrLongBuffer is returned when a buffer holds more bytes than the
	// valid bit count requires.
	ErrLongBuffer = errors.New("bitstream: buffer longer than bit count")
)

// BytesFor returns the number of bytes needed to hold n bits.
func BytesFor(n uint64) uint64 {
	return n/8 + (n%8+7)/8
}

// Writer appends bits to an in-memory buffer.
type Writer struct {
	buf  bytes.Buffer
	out  *bitio.Writer
	bits uint64
	done bool
}

// NewWriter creates an empty bit writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.out = bitio.NewWriter(&w.buf)
	return w
}

// WriteBit appends the lowest bit of bit.
func (w *Writer) WriteBit(bit byte) error {
	if w.done {
		return errors.New("bitstream: write after Finish")
	}
	if err := w.out.WriteBool(bit&1 == 1); err != nil {
		return err
	}
	w.bits++
	return nil
}

// WriteBits appends the n lowest bits of bits, most significant first.
func (w *Writer) WriteBits(bits uint64, n uint8) error {
	if w.done {
		return errors.New("bitstream: write after Finish")
	}
	if n > 64 {
		return fmt.Errorf("bitstream: cannot write %d bits at once", n)
	}
	if n == 0 {
		return nil
	}
	if err := w.out.WriteBits(bits, n); err != nil {
		return err
	}
	w.bits += uint64(n)
	return nil
}

// Len returns the number of valid bits written so far.
func (w *Writer) Len() uint64 { return w.bits }

// Finish flushes the partial last byte and returns the packed bytes
// together with the number of valid bits in them.
func (w *Writer) Finish() ([]byte, uint64, error) {
	if !w.done {
		w.done = true
		if err := w.out.Close(); err != nil {
			return nil, 0, err
		}
	}
	return w.buf.Bytes(), w.bits, nil
}

// Reader reads bits from a packed buffer, stopping at the valid bit count.
type Reader struct {
	in        *bitio.Reader
	remaining uint64
}

// NewReader creates a reader over buf holding exactly validBits bits.
// The buffer length must be exactly BytesFor(validBits).
func NewReader(buf []byte, validBits uint64) (*Reader, error) {
	need := BytesFor(validBits)
	switch {
	case uint64(len(buf)) < need:
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(buf), need)
	case uint64(len(buf)) > need:
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrLongBuffer, len(buf), need)
	}
	return &Reader{
		in:        bitio.NewReader(bytes.NewReader(buf)),
		remaining: validBits,
	}, nil
}

// ReadBit returns the next valid bit, or io.EOF once all valid bits have
// been consumed. Padding bits in the last byte are never returned.
func (r *Reader) ReadBit() (byte, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	b, err := r.in.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	r.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}

// Remaining returns the number of valid bits not yet read.
func (r *Reader) Remaining() uint64 { return r.remaining }
