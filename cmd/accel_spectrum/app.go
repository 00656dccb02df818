package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/user/accel_spectrum_go/internal/analysis"
	"github.com/user/accel_spectrum_go/internal/config"
	"github.com/user/accel_spectrum_go/internal/logging"
	"github.com/user/accel_spectrum_go/internal/parser"
	"github.com/user/accel_spectrum_go/internal/report"
)

// App runs the load -> estimate -> analyze -> render pipeline for one file.
type App struct {
	cfg    *config.Config
	out    io.Writer // diagnostic line and saved-file list
	logger *logging.Logger
}

// NewApp creates an App writing user-facing output to out. A nil logger
// selects the process-wide one.
func NewApp(cfg *config.Config, out io.Writer, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.L()
	}
	return &App{cfg: cfg, out: out, logger: logger}
}

func (a *App) sendStatus(format string, args ...any) {
	a.logger.Info(format, args...)
}

// Run processes inputPath and returns the saved artifact paths. Any error is
// terminal: nothing is written once a pipeline stage fails.
func (a *App) Run(inputPath string) ([]string, error) {
	a.sendStatus("Parsing: %s", inputPath)
	table, err := parser.Load(inputPath)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	a.sendStatus("Parsed %d rows (header row: %v).", table.Len(), table.HeaderUsed)
	for _, d := range table.Dropped {
		a.logger.Warn("dropped line %d: %s", d.Line, d.Reason)
	}

	res, err := analysis.AnalyzeRecording(table)
	if err != nil {
		return nil, fmt.Errorf("analyzing input: %w", err)
	}

	fmt.Fprintf(a.out, "Estimated Fs = %.3f Hz (median dt = %.6f s), N = %d samples\n",
		res.SampleRate, res.SamplePeriod(), len(res.Time))
	if peak, ok := res.Spectrum.Peak(); ok {
		a.sendStatus("Dominant component %.3f Hz (amplitude %.4g), bin width %.4f Hz.",
			peak.Frequency, peak.Amplitude, res.Spectrum.BinWidth())
	}

	saved, err := a.writeArtifacts(inputPath, res)
	if err != nil {
		return nil, err
	}
	if len(saved) > 0 {
		fmt.Fprintln(a.out, "Saved:")
		for _, p := range saved {
			fmt.Fprintf(a.out, "  %s\n", p)
		}
	}
	return saved, nil
}

func (a *App) writeArtifacts(inputPath string, res *analysis.Result) ([]string, error) {
	out := a.cfg.Output
	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	size := report.PlotSize{Width: a.cfg.Plot.WidthPt, Height: a.cfg.Plot.HeightPt}
	maxFreq := a.cfg.Plot.MaxFreqHz

	// Charts are rendered in memory first so the PDF can embed them.
	plotImages := make(map[string][]byte)
	if out.PNG || out.PDF {
		a.sendStatus("Generating plots...")
		mag, err := report.CreateMagnitudePlot(res.Time, res.Magnitude, size)
		if err != nil {
			return nil, fmt.Errorf("magnitude plot: %w", err)
		}
		plotImages[report.PlotMagnitude] = mag

		spec, err := report.CreateSpectrumPlot(res.Spectrum, maxFreq, size)
		if err != nil {
			return nil, fmt.Errorf("spectrum plot: %w", err)
		}
		plotImages[report.PlotSpectrum] = spec
	}

	var saved []string
	artifact := func(suffix string) string {
		return report.ArtifactPath(inputPath, out.Dir, suffix)
	}

	if out.PNG {
		for _, f := range []struct{ key, suffix string }{
			{report.PlotMagnitude, report.SuffixMagnitudePNG},
			{report.PlotSpectrum, report.SuffixSpectrumPNG},
		} {
			path := artifact(f.suffix)
			if err := os.WriteFile(path, plotImages[f.key], 0o644); err != nil {
				return saved, fmt.Errorf("writing %s: %w", path, err)
			}
			saved = append(saved, path)
		}
	}

	if out.PDF {
		path := artifact(report.SuffixReportPDF)
		a.sendStatus("Generating PDF: %s...", path)
		if err := report.BuildPDFReport(path, filepath.Base(inputPath), res, a.cfg.Report.TopPeaks, plotImages); err != nil {
			return saved, fmt.Errorf("generating PDF report: %w", err)
		}
		saved = append(saved, path)
	}

	if out.HTML {
		path := artifact(report.SuffixChartsHTML)
		var buf bytes.Buffer
		if err := report.WriteHTMLCharts(&buf, res, maxFreq); err != nil {
			return saved, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return saved, fmt.Errorf("writing %s: %w", path, err)
		}
		saved = append(saved, path)
	}

	if out.CSV {
		path := artifact(report.SuffixSpectrumCSV)
		var buf bytes.Buffer
		if err := report.WriteSpectrumCSV(&buf, res.Spectrum); err != nil {
			return saved, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return saved, fmt.Errorf("writing %s: %w", path, err)
		}
		saved = append(saved, path)
	}

	return saved, nil
}
