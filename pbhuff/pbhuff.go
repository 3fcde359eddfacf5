// Package pbhuff compresses protobuf messages with the static Huffman coder.
//
// Messages are marshaled deterministically and the wire bytes are encoded
// with huffman.Compress, so the compressed form is self-contained.
package pbhuff

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/egonelbre/exp-huffman-coding/huffman"
)

var marshalOptions = proto.MarshalOptions{Deterministic: true}

// Compress compresses a protobuf message and writes it to w.
func Compress(msg proto.Message, w io.Writer) error {
	wire, err := marshalOptions.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}
	return huffman.Compress(wire, w)
}

// Decompress reads a message written by Compress into msg.
func Decompress(r io.Reader, msg proto.Message) error {
	wire, err := huffman.Decompress(r)
	if err != nil {
		return err
	}
	if err := proto.Unmarshal(wire, msg); err != nil {
		return fmt.Errorf("unmarshal %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}
	return nil
}

// Stats describes how well a message compresses.
type Stats struct {
	// Fields is the number of populated fields, counted recursively.
	Fields int
	// Kinds counts the populated fields by kind.
	Kinds map[protoreflect.Kind]int
	// WireBytes is the size of the deterministic wire encoding.
	WireBytes int
	// CompressedBytes is the size of the Huffman header and payload.
	CompressedBytes int
}

// Ratio returns the compressed size as a percentage of the wire size.
func (s Stats) Ratio() float64 {
	if s.WireBytes == 0 {
		return 0
	}
	return 100 * float64(s.CompressedBytes) / float64(s.WireBytes)
}

// Ratio computes compression statistics for msg.
func Ratio(msg proto.Message) (Stats, error) {
	wire, err := marshalOptions.Marshal(msg)
	if err != nil {
		return Stats{}, fmt.Errorf("marshal %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}

	stats := Stats{
		Kinds:           make(map[protoreflect.Kind]int),
		WireBytes:       len(wire),
		CompressedBytes: len(huffman.Marshal(wire)),
	}
	countFields(msg.ProtoReflect(), &stats)
	return stats, nil
}

// countFields recursively counts the populated fields of msg.
func countFields(msg protoreflect.Message, stats *Stats) {
	msg.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		stats.Fields++
		stats.Kinds[fd.Kind()]++

		switch {
		case fd.IsList():
			if fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind {
				list := v.List()
				for i := 0; i < list.Len(); i++ {
					countFields(list.Get(i).Message(), stats)
				}
			}
		case fd.IsMap():
			valueFd := fd.MapValue()
			if valueFd.Kind() == protoreflect.MessageKind {
				v.Map().Range(func(_ protoreflect.MapKey, mv protoreflect.Value) bool {
					countFields(mv.Message(), stats)
					return true
				})
			}
		case fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind:
			countFields(v.Message(), stats)
		}
		return true
	})
}
