package huffman

import (
	"math/rand"
	"testing"
)

// TestCompressionRatioEnglishText tests compression effectiveness on English text of various sizes.
func TestCompressionRatioEnglishText(t *testing.T) {
	testCases := []struct {
		name     string
		size     int
		maxRatio float64 // Maximum acceptable ratio (lower is better)
	}{
		{"Medium (1KB)", 1024, 70.0}, // header overhead is noticeable
		{"Large (10KB)", 10 * 1024, 62.0},
		{"Very Large (100KB)", 100 * 1024, 60.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text := []byte(repeatText(sampleText, tc.size))
			compressed := Marshal(text)

			ratio := 100.0 * float64(len(compressed)) / float64(len(text))
			t.Logf("Original: %d bytes, Compressed: %d bytes, Ratio: %.2f%%",
				len(text), len(compressed), ratio)

			if ratio > tc.maxRatio {
				t.Errorf("Compression ratio %.2f%% exceeds maximum %.2f%%", ratio, tc.maxRatio)
			}

			decoded, err := Unmarshal(compressed)
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if string(decoded) != string(text) {
				t.Error("Decoded text doesn't match original")
			}
		})
	}
}

// TestCompressionRatioBinaryData tests compression on random binary data (worst case).
func TestCompressionRatioBinaryData(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	for _, size := range []int{1024, 10 * 1024, 64 * 1024} {
		data := make([]byte, size)
		rng.Read(data)

		compressed := Marshal(data)
		ratio := 100.0 * float64(len(compressed)) / float64(len(data))
		t.Logf("Random data - Original: %d bytes, Compressed: %d bytes, Ratio: %.2f%%",
			len(data), len(compressed), ratio)

		// 256 header entries plus at most a fraction of a bit per symbol
		if limit := 101.0 + 100.0*1024/float64(size); ratio > limit {
			t.Errorf("Random data expanded to %.2f%%, limit %.2f%%", ratio, limit)
		}
	}
}
