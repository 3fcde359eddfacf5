package huffman

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// FrequencyTable maps byte values to their occurrence counts.
// Symbols that never occur have no entry. A table is immutable once built.
type FrequencyTable struct {
	counts   [256]uint64
	distinct int
	total    uint64
}

// Count scans data once and returns its frequency table.
func Count(data []byte) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, b := range data {
		ft.counts[b]++
	}
	ft.finish()
	return ft
}

// CountParallel counts data split into the given number of shards, each
// counted in its own goroutine. The result equals Count(data).
func CountParallel(ctx context.Context, data []byte, shards int) (*FrequencyTable, error) {
	if shards <= 1 || len(data) < shards {
		return Count(data), nil
	}

	partial := make([]*FrequencyTable, shards)
	size := (len(data) + shards - 1) / shards

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < shards; i++ {
		i := i
		lo := i * size
		hi := min(lo+size, len(data))
		if lo >= hi {
			partial[i] = &FrequencyTable{}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial[i] = Count(data[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count shards: %w", err)
	}

	ft := &FrequencyTable{}
	for _, p := range partial {
		ft = ft.Merge(p)
	}
	return ft, nil
}

// NewFrequencyTable creates a table from explicit counts.
// Every count must be positive.
func NewFrequencyTable(counts map[byte]uint64) (*FrequencyTable, error) {
	ft := &FrequencyTable{}
	var total uint64
	for sym, n := range counts {
		if n == 0 {
			return nil, fmt.Errorf("symbol %d: frequency must be positive", sym)
		}
		if total+n < total {
			return nil, fmt.Errorf("symbol %d: frequency total overflows", sym)
		}
		total += n
		ft.counts[sym] = n
	}
	ft.finish()
	return ft, nil
}

// Merge returns a new table holding the summed counts of ft and other.
func (ft *FrequencyTable) Merge(other *FrequencyTable) *FrequencyTable {
	merged := &FrequencyTable{}
	for i := range merged.counts {
		merged.counts[i] = ft.counts[i] + other.counts[i]
	}
	merged.finish()
	return merged
}

func (ft *FrequencyTable) finish() {
	ft.distinct, ft.total = 0, 0
	for _, n := range ft.counts {
		if n > 0 {
			ft.distinct++
			ft.total += n
		}
	}
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int { return ft.distinct }

// Total returns the sum of all counts, which is the length of the input.
func (ft *FrequencyTable) Total() uint64 { return ft.total }

// Count returns the count of sym and whether sym occurs at all.
func (ft *FrequencyTable) Count(sym byte) (uint64, bool) {
	n := ft.counts[sym]
	return n, n > 0
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, ft.distinct)
	for i, n := range ft.counts {
		if n > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// String formats the table as "sym:count" pairs, most frequent first.
func (ft *FrequencyTable) String() string {
	syms := ft.Symbols()
	sort.SliceStable(syms, func(i, j int) bool {
		return ft.counts[syms[i]] > ft.counts[syms[j]]
	})
	buf := []byte("freq[")
	for i, sym := range syms {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "%q:%d", sym, ft.counts[sym])
	}
	return string(append(buf, ']'))
}
