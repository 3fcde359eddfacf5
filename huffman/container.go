package huffman

import (
	"fmt"
	"io"
)

// Compress encodes data and writes the header followed by the payload to w.
// The header records the payload length, so the stream is self-delimiting.
func Compress(data []byte, w io.Writer) error {
	header, payload := Encode(data)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Decompress reads a stream written by Compress and returns the original data.
func Decompress(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// Marshal returns the header and payload of data as a single buffer.
func Marshal(data []byte) []byte {
	header, payload := Encode(data)
	return append(header, payload...)
}

// Unmarshal decodes a buffer produced by Marshal or Compress.
func Unmarshal(b []byte) ([]byte, error) {
	h, tree, n, err := readHeader(b)
	if err != nil {
		return nil, err
	}
	return decodePayload(h, tree, b[n:])
}
