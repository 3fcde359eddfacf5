package huffman

import (
	"math/rand"
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code     Code
		expected string
	}{
		{Code{}, ""},
		{Code{Bits: 0, Len: 1}, "0"},
		{Code{Bits: 0b101, Len: 3}, "101"},
		{Code{Bits: 0b1, Len: 4}, "0001"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.expected {
			t.Errorf("Code{%b, %d}.String() = %q, expected %q", tt.code.Bits, tt.code.Len, got, tt.expected)
		}
	}
}

func TestCodesAbracadabra(t *testing.T) {
	tree, _ := BuildTree(Count([]byte("abracadabra")))
	codes := tree.Codes()

	expected := map[byte]string{
		'a': "0",
		'c': "100",
		'd': "101",
		'b': "110",
		'r': "111",
	}
	for sym, want := range expected {
		code, ok := codes.Lookup(sym)
		if !ok || code.String() != want {
			t.Errorf("Code(%q) = %v, %v; expected %s", sym, code, ok, want)
		}
	}
	if _, ok := codes.Lookup('x'); ok {
		t.Error("Expected no code for 'x'")
	}

	ft := Count([]byte("abracadabra"))
	if bits := codes.EncodedBits(ft); bits != 23 {
		t.Errorf("EncodedBits = %d, expected 23", bits)
	}
}

func TestPrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for iter := 0; iter < 20; iter++ {
		data := make([]byte, 2000)
		for i := range data {
			// skewed distribution for varied code lengths
			data[i] = byte(min(rng.ExpFloat64()*20, 255))
		}
		tree, _ := BuildTree(Count(data))
		codes := tree.Codes()
		syms := codes.Symbols()

		for i, a := range syms {
			ca, _ := codes.Lookup(a)
			for _, b := range syms[i+1:] {
				cb, _ := codes.Lookup(b)
				if ca.HasPrefix(cb) || cb.HasPrefix(ca) {
					t.Fatalf("Codes %q=%v and %q=%v are not prefix-free", a, ca, b, cb)
				}
			}
		}
	}
}

func TestOptimality(t *testing.T) {
	tests := []struct {
		name  string
		freqs []uint64
	}{
		{"two", []uint64{1, 1}},
		{"abracadabra", []uint64{5, 2, 2, 1, 1}},
		{"uniform", []uint64{4, 4, 4, 4, 4, 4, 4, 4}},
		{"fibonacci", []uint64{1, 1, 2, 3, 5, 8, 13, 21, 34}},
		{"skewed", []uint64{100, 1, 1, 1, 1}},
		{"textbook", []uint64{45, 13, 12, 16, 9, 5}},
		{"ties", []uint64{3, 3, 3, 2, 2, 2, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := map[byte]uint64{}
			for i, f := range tt.freqs {
				counts[byte(i)] = f
			}
			ft, err := NewFrequencyTable(counts)
			if err != nil {
				t.Fatal(err)
			}
			tree, err := BuildTree(ft)
			if err != nil {
				t.Fatal(err)
			}

			got := tree.Codes().EncodedBits(ft)
			want := referenceCost(tt.freqs)
			if got != want {
				t.Errorf("Expected length %d, optimal is %d", got, want)
			}
		})
	}
}

func TestCodesFullAlphabet(t *testing.T) {
	data := make([]byte, 256*3)
	for i := range data {
		data[i] = byte(i)
	}
	tree, _ := BuildTree(Count(data))
	codes := tree.Codes()

	if len(codes.Symbols()) != 256 {
		t.Fatalf("Expected 256 codes, got %d", len(codes.Symbols()))
	}
	for _, sym := range codes.Symbols() {
		code, _ := codes.Lookup(sym)
		if code.Len != 8 {
			t.Errorf("Code(%d) has length %d, expected 8", sym, code.Len)
		}
	}
}
