package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/RealOrko/sindarin"
)

type args struct {
	source     string
	outputPath *string
	verbose    *bool
	logLevel   *int
}

func readArgs() *args {
	a := &args{
		outputPath: flag.String("o", "", "Path to the output C file (default: source basename with .s appended)"),
		verbose:    flag.Bool("v", false, "Verbose driver logging"),
		logLevel:   flag.Int("l", 1, "Log level [0-4]"),
	}
	flag.Parse()

	rest := flag.Args()
	if len(rest) < 2 || rest[0] != "compile" {
		log.Fatal("usage: sindarinc compile <source> [-o <output>] [-v] [-l <level 0..4>]")
	}
	a.source = rest[1]
	return a
}

func defaultOutputPath(source string) string {
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".s"
}

func main() {
	a := readArgs()

	if *a.logLevel < 0 || *a.logLevel > 4 {
		fmt.Fprintln(os.Stderr, "log level must be in [0, 4]")
		os.Exit(1)
	}

	outputPath := *a.outputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(a.source)
	}

	cfg := sindarin.NewConfig()
	cfg.SetBool("driver.verbose", *a.verbose)
	cfg.SetInt("driver.log_level", *a.logLevel)

	if *a.verbose {
		fmt.Fprintf(os.Stderr, "compiling %s -> %s\n", a.source, outputPath)
	}

	result := sindarin.Compile(a.source, cfg)
	if result.Diags.HasErrors() {
		sindarin.PrintDiagnostics(result.Diags)
		os.Exit(1)
	}

	if err := sindarin.WriteOutput(outputPath, result.Output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sindarin.PrintDiagnostics(result.Diags)
	os.Exit(0)
}
