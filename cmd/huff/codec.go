package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/egonelbre/exp-huffman-coding/huffman"
	"github.com/egonelbre/exp-huffman-coding/internal/logger"
)

type codec struct {
	log     logger.Logger
	workers int
}

// outputNames returns NAME_compressed.EXT and NAME_de_compressed.EXT for NAME.EXT.
func outputNames(path string) (compressed, decompressed string) {
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(path, ext)
	return name + "_compressed" + ext, name + "_de_compressed" + ext
}

// roundtrip compresses path, decompresses the result and checks that the
// decompressed file equals the original.
func (c *codec) roundtrip(path string) error {
	compressed, decompressed := outputNames(path)

	if err := c.compressFile(path, compressed); err != nil {
		return err
	}
	if err := c.decompressFile(compressed, decompressed); err != nil {
		return err
	}
	if err := verifyFiles(path, decompressed); err != nil {
		return err
	}
	c.log.Infof("compression successful and verified")
	return nil
}

func (c *codec) compressFile(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	c.log.Infof("%s is %d bits long", input, 8*len(data))

	header, payload, err := huffman.EncodeParallel(context.Background(), data, c.workers)
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}

	h, err := huffman.ParseHeader(header)
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}
	c.log.Infof("%s is %d bits long (%d payload bits, %d header bytes, %d symbols)",
		output, 8*(len(header)+len(payload)), h.Bits, len(header), h.Freqs.Len())

	out := append(header, payload...)
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return err
	}
	return nil
}

func (c *codec) decompressFile(input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := huffman.Decompress(f)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", input, err)
	}
	c.log.Infof("%s is %d bits long", output, 8*len(data))

	return os.WriteFile(output, data, 0o644)
}

// verifyFiles reports the first offset at which the two files differ.
func verifyFiles(original, decompressed string) error {
	a, err := os.ReadFile(original)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(decompressed)
	if err != nil {
		return err
	}
	if bytes.Equal(a, b) {
		return nil
	}

	n := min(len(a), len(b))
	offset := n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			offset = i
			break
		}
	}
	return fmt.Errorf("verify: %s and %s differ at byte %d (sizes %d and %d)",
		original, decompressed, offset, len(a), len(b))
}
