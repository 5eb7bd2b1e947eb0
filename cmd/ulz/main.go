// Command ulz compresses and decompresses streams using the ulz frame
// format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jibsen/ulz/frame"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ulz:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("missing subcommand")
	}

	switch args[0] {
	case "compress":
		return runCompress(args[1:])
	case "decompress":
		return runDecompress(args[1:])
	case "-h", "-help", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ulz compress [-level N] [-o output] [input]")
	fmt.Fprintln(os.Stderr, "       ulz decompress [-o output] [input]")
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	level := fs.Int("level", 4, "compression level, 1 (fastest) to 9 (smallest)")
	outPath := fs.String("o", "", "output path (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, closeIn, err := openInput(fs.Args())
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	w := frame.NewWriter(out, *level)
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("compressing: %w", err)
	}
	return w.Close()
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	outPath := fs.String("o", "", "output path (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, closeIn, err := openInput(fs.Args())
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	r := frame.NewReader(in)
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("decompressing: %w", err)
	}
	return nil
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
