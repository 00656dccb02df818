package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/user/accel_spectrum_go/internal/analysis"
)

// WriteHTMLCharts renders both charts as one interactive HTML page.
func WriteHTMLCharts(w io.Writer, res *analysis.Result, maxFreq float64) error {
	if res == nil || res.Spectrum == nil {
		return fmt.Errorf("no analysis result to chart")
	}

	magnitude := lineChart(
		"Acceleration Magnitude vs Time (mean removed)", "Time (s)", "Magnitude",
		res.Time, res.Magnitude)

	spec := res.Spectrum.Below(maxFreq)
	spectrum := lineChart(
		"Single-Sided Amplitude Spectrum (FFT)", "Frequency (Hz)", "Amplitude",
		spec.Frequencies, spec.Amplitudes)

	page := components.NewPage()
	page.PageTitle = "Acceleration spectrum"
	page.AddCharts(magnitude, spectrum)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render html charts: %w", err)
	}
	return nil
}

func lineChart(title, xName, yName string, xs, ys []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	labels := make([]string, len(xs))
	items := make([]opts.LineData, len(ys))
	for i := range xs {
		labels[i] = strconv.FormatFloat(xs[i], 'f', 4, 64)
		items[i] = opts.LineData{Value: ys[i]}
	}
	line.SetXAxis(labels).AddSeries(yName, items)
	return line
}
