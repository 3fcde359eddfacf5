package huffman

import "errors"

var (
	// ErrEmptyInput is returned when a tree is requested for an empty
	// frequency table. Encoding empty input is not an error.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrInvalidHeader is returned for a malformed or truncated header.
	// The wrapping error names the field that failed validation.
	ErrInvalidHeader = errors.New("huffman: invalid header")

	// ErrCorruptPayload is returned when the payload does not decode to
	// exactly the symbols described by the header.
	ErrCorruptPayload = errors.New("huffman: corrupt payload")

	// ErrInternalInvariant marks a tree or code table inconsistency that
	// cannot be caused by input. It is only ever raised through panic.
	ErrInternalInvariant = errors.New("huffman: internal invariant violated")
)
