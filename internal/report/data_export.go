package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/accel_spectrum_go/internal/analysis"
)

// Artifact suffixes appended to the input file stem.
const (
	SuffixMagnitudePNG = "_magnitude.png"
	SuffixSpectrumPNG  = "_fft.png"
	SuffixReportPDF    = "_report.pdf"
	SuffixChartsHTML   = "_charts.html"
	SuffixSpectrumCSV  = "_spectrum.csv"
)

// ArtifactPath builds an output path from the input path: the input's
// extension is replaced by suffix. If outDir is non-empty the file is placed
// there instead of next to the input.
func ArtifactPath(inputPath, outDir, suffix string) string {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if outDir != "" {
		stem = filepath.Join(outDir, filepath.Base(stem))
	}
	return stem + suffix
}

// SpectrumHeader is the header row of the spectrum CSV export.
var SpectrumHeader = []string{"frequency_hz", "amplitude"}

// WriteSpectrumCSV writes one (frequency, amplitude) row per bin.
func WriteSpectrumCSV(w io.Writer, spec *analysis.Spectrum) error {
	if spec == nil {
		return fmt.Errorf("no spectrum to export")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(SpectrumHeader); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	for i := range spec.Frequencies {
		row := []string{
			strconv.FormatFloat(spec.Frequencies[i], 'f', 6, 64),
			strconv.FormatFloat(spec.Amplitudes[i], 'g', 10, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
