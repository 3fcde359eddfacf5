package huffman

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestCount(t *testing.T) {
	ft := Count([]byte("abracadabra"))

	if ft.Len() != 5 {
		t.Errorf("Expected 5 distinct symbols, got %d", ft.Len())
	}
	if ft.Total() != 11 {
		t.Errorf("Expected total 11, got %d", ft.Total())
	}

	expected := map[byte]uint64{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	for sym, want := range expected {
		got, ok := ft.Count(sym)
		if !ok || got != want {
			t.Errorf("Count(%q) = %d, %v; expected %d, true", sym, got, ok, want)
		}
	}
	if n, ok := ft.Count('z'); ok || n != 0 {
		t.Errorf("Count('z') = %d, %v; expected absent", n, ok)
	}

	if got := ft.Symbols(); !bytes.Equal(got, []byte("abcdr")) {
		t.Errorf("Symbols() = %q, expected \"abcdr\"", got)
	}
}

func TestCountEmpty(t *testing.T) {
	ft := Count(nil)
	if ft.Len() != 0 || ft.Total() != 0 || len(ft.Symbols()) != 0 {
		t.Errorf("Expected empty table, got %v", ft)
	}
}

func TestNewFrequencyTable(t *testing.T) {
	ft, err := NewFrequencyTable(map[byte]uint64{0: 3, 255: 7})
	if err != nil {
		t.Fatalf("NewFrequencyTable failed: %v", err)
	}
	if ft.Len() != 2 || ft.Total() != 10 {
		t.Errorf("Expected 2 symbols totalling 10, got %d totalling %d", ft.Len(), ft.Total())
	}

	if _, err := NewFrequencyTable(map[byte]uint64{'x': 0}); err == nil {
		t.Error("Expected error for zero frequency")
	}
	if _, err := NewFrequencyTable(map[byte]uint64{1: 1 << 63, 2: 1 << 63}); err == nil {
		t.Error("Expected error for overflowing total")
	}
}

func TestMerge(t *testing.T) {
	a := Count([]byte("hello "))
	b := Count([]byte("world"))
	merged := a.Merge(b)
	whole := Count([]byte("hello world"))

	if merged.String() != whole.String() {
		t.Errorf("Merge = %v, expected %v", merged, whole)
	}
	if a.Total() != 6 || b.Total() != 5 {
		t.Error("Merge modified its inputs")
	}
}

func TestCountParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 10007)
	rng.Read(data)
	want := Count(data)

	for _, shards := range []int{0, 1, 2, 3, 8, 64} {
		got, err := CountParallel(context.Background(), data, shards)
		if err != nil {
			t.Fatalf("CountParallel(%d) failed: %v", shards, err)
		}
		for i := 0; i < 256; i++ {
			g, _ := got.Count(byte(i))
			w, _ := want.Count(byte(i))
			if g != w {
				t.Fatalf("shards=%d: symbol %d counted %d, expected %d", shards, i, g, w)
			}
		}
		if got.Total() != want.Total() || got.Len() != want.Len() {
			t.Errorf("shards=%d: totals differ", shards)
		}
	}

	// fewer bytes than shards
	got, err := CountParallel(context.Background(), []byte("ab"), 8)
	if err != nil || got.Total() != 2 {
		t.Errorf("CountParallel on short input = %v, %v", got, err)
	}
}

func TestCountParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CountParallel(ctx, make([]byte, 1024), 4)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
