// Command uxncle compiles a single Uxncle source file into Uxntal
// assembly text.
//
// Usage:
//
//	uxncle <source-path> <output-path>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"uxncle/compiler"
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

// sysexits.h-style exit codes, since the spec calls for 74 (EX_IOERR)
// on a read/write failure specifically, distinct from a plain compile
// error.
const (
	exitOK     = 0
	exitIOErr  = 74
	exitFailed = 1
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: uxncle <source-path> <output-path>\n")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(exitFailed)
	}

	os.Exit(run(flag.Arg(0), flag.Arg(1)))
}

func run(sourcePath, outputPath string) int {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read %s: %v\n", sourcePath, err)
		return exitIOErr
	}

	out, err := compiler.New(string(src)).Compile()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return exitFailed
	}

	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		redColor.Fprintf(os.Stderr, "could not write %s: %v\n", outputPath, err)
		return exitIOErr
	}

	cyanColor.Fprintf(os.Stdout, "wrote %s\n", outputPath)
	return exitOK
}
