// Copyright (C) 2026 The PDF-Flux Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command pdfflux inverts the colors of one or more PDF files, writing
// each result next to the input with a "-inverted" suffix (or to an
// explicit -out path when exactly one input is given).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bhyresh-dev/PDF-Flux/orchestrate"
)

func main() {
	mode := flag.String("mode", "full", "inversion mode: full, grayscale, text-only, custom")
	rangeFlag := flag.String("range", "all", "page range: all, odd, even, or a custom list like 1-3,5")
	dpi := flag.Int("dpi", 300, "output DPI hint: 150, 300, or 600")
	compress := flag.Bool("compress", false, "re-encode images as JPEG instead of lossless Flate")
	percentage := flag.Int("percentage", 100, "inversion strength, 1-100 (0 is treated as unset and means 100)")
	out := flag.String("out", "", "output path (only valid with exactly one input)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.pdf [input2.pdf ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	req, err := buildRequest(*mode, *rangeFlag, *dpi, *compress, *percentage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inputs := flag.Args()
	if *out != "" && len(inputs) != 1 {
		fmt.Fprintln(os.Stderr, "Error: -out requires exactly one input file")
		os.Exit(1)
	}

	ctx := context.Background()
	if len(inputs) == 1 {
		outPath := *out
		if outPath == "" {
			outPath = defaultOutputPath(inputs[0])
		}
		if err := processOne(ctx, inputs[0], outPath, req); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputs[0], err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return
	}

	// Batch mode: process every input concurrently, mirroring the
	// worker-fan-out idiom of processing N independent documents at once.
	g, gCtx := errgroup.WithContext(ctx)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			outPath := defaultOutputPath(in)
			if err := processOne(gCtx, in, outPath, req); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			fmt.Printf("Wrote %s\n", outPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func processOne(ctx context.Context, inPath, outPath string, req orchestrate.ProcessRequest) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	orch := &orchestrate.Orchestrator{}
	output, err := orch.Process(ctx, input, req)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, output, 0o644)
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	base := strings.TrimSuffix(inPath, ext)
	return base + "-inverted" + ext
}

func buildRequest(mode, rangeExpr string, dpi int, compress bool, percentage int) (orchestrate.ProcessRequest, error) {
	m, err := parseMode(mode)
	if err != nil {
		return orchestrate.ProcessRequest{}, err
	}

	sel, err := parseRange(rangeExpr)
	if err != nil {
		return orchestrate.ProcessRequest{}, err
	}

	return orchestrate.ProcessRequest{
		Mode:                m,
		Range:               sel,
		CompressImages:      compress,
		OutputDPIHint:       dpi,
		InversionPercentage: percentage,
	}, nil
}

func parseMode(s string) (orchestrate.InversionMode, error) {
	switch strings.ToLower(s) {
	case "full":
		return orchestrate.ModeFull, nil
	case "grayscale":
		return orchestrate.ModeGrayscale, nil
	case "text-only", "textonly":
		return orchestrate.ModeTextOnly, nil
	case "custom":
		return orchestrate.ModeCustom, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func parseRange(s string) (orchestrate.RangeSelector, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return orchestrate.RangeSelector{Type: orchestrate.RangeAll}, nil
	case "odd":
		return orchestrate.RangeSelector{Type: orchestrate.RangeOdd}, nil
	case "even":
		return orchestrate.RangeSelector{Type: orchestrate.RangeEven}, nil
	default:
		return orchestrate.RangeSelector{Type: orchestrate.RangeCustom, CustomRange: s}, nil
	}
}
