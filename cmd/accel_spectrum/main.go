// accel_spectrum estimates the sampling rate of a triaxial accelerometer
// recording and renders its vector-magnitude amplitude spectrum.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/user/accel_spectrum_go/internal/config"
	"github.com/user/accel_spectrum_go/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the pipeline and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("accel_spectrum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional YAML config file")
	outDir := fs.String("out", "", "output directory (default: next to the input)")
	pdf := fs.Bool("pdf", false, "also write a PDF report")
	html := fs.Bool("html", false, "also write interactive HTML charts")
	csvOut := fs.Bool("csv", false, "also write the spectrum as CSV")
	noPNG := fs.Bool("no-png", false, "skip the PNG charts")
	maxFreq := fs.Float64("max-freq", -1, "upper frequency of the spectrum chart in Hz (0 = fs/2)")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: accel_spectrum [options] <data.csv|data.xlsx>\n\n")
		fmt.Fprintf(stderr, "Input columns: time (s), ax, ay, az. A header row is optional.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Flags override the config file only when given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.Dir = *outDir
		case "pdf":
			cfg.Output.PDF = *pdf
		case "html":
			cfg.Output.HTML = *html
		case "csv":
			cfg.Output.CSV = *csvOut
		case "no-png":
			cfg.Output.PNG = !*noPNG
		case "max-freq":
			cfg.Plot.MaxFreqHz = *maxFreq
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *verbose {
		level = logging.DEBUG
	}
	logger := logging.Init(stderr, level)

	app := NewApp(cfg, stdout, logger)
	if _, err := app.Run(fs.Arg(0)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
