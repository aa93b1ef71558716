// gsconv - Gaussian splat format converter
//
// Usage:
//
//	gsconv -in cloud.ply -out cloud.splat
//	gsconv -in cloud.ksplat -out cloud.sog -strict
//	gsconv -in cloud.spz
//
// The extension of -in/-out selects the codec; "compressed.ply" is
// recognized as a double suffix. If no -out is given, gsconv prints
// the model-info summary of -in instead of converting.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/gslog"
	"github.com/gsplatlib/gsplat-core/modelinfo"
	"github.com/gsplatlib/gsplat-core/registry"
)

func main() {
	inPath := flag.String("in", "", "input file path (required)")
	outPath := flag.String("out", "", "output file path; omit to print model info")
	strict := flag.Bool("strict", false, "elevate validation warnings to failures")
	flag.Usage = printUsage
	flag.Parse()

	if *inPath == "" {
		printUsage()
		os.Exit(1)
	}

	log := gslog.Default()
	r := registry.Default()
	opts := gsplat.Options{Strict: *strict}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fatal(log, "read", err)
	}
	fromExt := registry.NormalizeFilename(*inPath)

	if *outPath == "" {
		ir, warning, err := r.Read(data, fromExt, opts)
		if err != nil {
			fatal(log, "read", err)
		}
		if warning != "" {
			log.Warn(fromExt, "read", warning)
		}
		printInfo(ir)
		return
	}

	toExt := registry.NormalizeFilename(*outPath)
	out, warning, err := r.Convert(data, fromExt, toExt, opts)
	if err != nil {
		fatal(log, "convert", err)
	}
	if warning != "" {
		log.Warn(fromExt, "convert", warning)
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		fatal(log, "write", err)
	}
	log.Info(toExt, "convert", fmt.Sprintf("wrote %s", *outPath))
}

func printInfo(ir *gsplat.GaussianCloudIR) {
	s := modelinfo.Summarize(ir)
	fmt.Printf("points:      %d\n", s.NumPoints)
	fmt.Printf("bounds:      min=%v max=%v\n", s.Bounds.Min, s.Bounds.Max)
	fmt.Printf("sh degree:   %d\n", s.ShDegree)
	fmt.Printf("antialiased: %v\n", s.Antialiased)
	fmt.Printf("source:      %s\n", s.SourceFormat)
	for _, sz := range s.Sizes {
		fmt.Printf("  %-10s %8d values  %s\n", sz.Name, sz.Count, modelinfo.FormatBytes(sz.Bytes))
	}
	fmt.Printf("total:       %s\n", modelinfo.FormatBytes(s.TotalBytes))
}

func fatal(log gslog.Logger, op string, err error) {
	log.Error("gsconv", op, err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `gsconv - Gaussian splat format converter

Usage:
  gsconv -in FILE [-out FILE] [-strict]

Flags:
`)
	flag.PrintDefaults()
}
