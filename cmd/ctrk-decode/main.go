// ctrk-decode — Yamaha Y-Trac CTRK Telemetry Decoder (Go)
//
// Decodes proprietary CTRK binary telemetry recordings into a 10 Hz
// sample stream and exports it to CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kv-telemetry/ctrk-decode/ctrk"
	"github.com/kv-telemetry/ctrk-decode/diagstore"
)

func processFile(path string, outputDir string, infoOnly bool, mode ctrk.Mode, store *diagstore.Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec, err := ctrk.Open(data, ctrk.Config{Mode: mode})
	if err != nil {
		return err
	}

	samples, diag, err := dec.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: decode stopped early: %v\n", err)
	}

	ctrk.PrintSummary(samples, diag)

	if store != nil {
		if err := store.Put(path, len(samples), diag, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: failed to record diagnostics: %v\n", err)
		}
	}

	if infoOnly {
		return nil
	}

	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	csvPath := filepath.Join(outputDir, stem+".csv")
	if err := ctrk.WriteCSV(samples, csvPath); err != nil {
		return err
	}
	fmt.Printf("  CSV: %s (%d rows)\n", csvPath, len(samples))
	return nil
}

func run() int {
	fs := flag.NewFlagSet("ctrk-decode", flag.ContinueOnError)
	info := fs.Bool("info", false, "Print decode summary only (no CSV export)")
	outputDir := fs.String("output-dir", "", "Directory for output files (default: same as input)")
	perLap := fs.Bool("per-lap", false, "Decode in per-lap mode (reset state at every lap marker)")
	diagDB := fs.String("diag-db", "", "Path to a bbolt database for recording decode diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ctrk-decode [options] <file.CTRK>\n\n")
		fmt.Fprintf(os.Stderr, "Decode a Yamaha Y-Trac CTRK telemetry recording into a\n")
		fmt.Fprintf(os.Stderr, "10 Hz CSV sample stream.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample: ctrk-decode --info session.CTRK\n")
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	inputPath := fs.Arg(0)
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", inputPath)
		return 1
	}

	var store *diagstore.Store
	if *diagDB != "" {
		s, err := diagstore.Open(*diagDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening diagnostics store: %v\n", err)
			return 1
		}
		defer s.Close()
		store = s
	}

	mode := ctrk.ModeContinuous
	if *perLap {
		mode = ctrk.ModePerLap
	}

	if err := processFile(inputPath, *outputDir, *info, mode, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
