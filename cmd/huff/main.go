// Command huff compresses and decompresses files with the static Huffman coder.
//
// Usage:
//
//	huff -f FILE        compress FILE, decompress the result and verify it
//	huff c INPUT OUTPUT compress INPUT into OUTPUT
//	huff d INPUT OUTPUT decompress INPUT into OUTPUT
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/egonelbre/exp-huffman-coding/internal/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: huff [-workers N] -f FILE\n       huff [-workers N] c|d INPUT OUTPUT\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	file := flag.String("f", "", "file to compress, decompress and verify")
	workers := flag.Int("workers", 1, "goroutines used for frequency counting")
	flag.Usage = usage
	flag.Parse()

	log := logger.New()
	c := &codec{log: log, workers: *workers}

	var err error
	args := flag.Args()
	switch {
	case *file != "":
		err = c.roundtrip(*file)
	case len(args) == 3 && args[0] == "c":
		err = c.compressFile(args[1], args[2])
	case len(args) == 3 && args[0] == "d":
		err = c.decompressFile(args[1], args[2])
	default:
		usage()
	}

	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
