package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/user/accel_spectrum_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSize is the rendered chart size in points.
type PlotSize struct {
	Width  float64
	Height float64
}

// DefaultPlotSize matches the report layout.
var DefaultPlotSize = PlotSize{Width: 800, Height: 400}

var seriesColor = color.RGBA{B: 200, A: 255}

// CreateMagnitudePlot renders the detrended magnitude against time as PNG.
func CreateMagnitudePlot(times, magnitude []float64, size PlotSize) ([]byte, error) {
	if len(times) == 0 || len(times) != len(magnitude) {
		return nil, fmt.Errorf("magnitude plot needs equal, non-empty series (time=%d, magnitude=%d)", len(times), len(magnitude))
	}

	p := plot.New()
	p.Title.Text = "Acceleration Magnitude vs Time (mean removed)"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Acceleration Magnitude (detrended)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i] = plotter.XY{X: times[i], Y: magnitude[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create magnitude line: %w", err)
	}
	line.Color = seriesColor
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	return renderPNG(p, size)
}

// CreateSpectrumPlot renders the single-sided amplitude spectrum as PNG with
// the x-axis spanning [0, maxFreq]. maxFreq <= 0 selects the Nyquist frequency.
func CreateSpectrumPlot(spec *analysis.Spectrum, maxFreq float64, size PlotSize) ([]byte, error) {
	if spec == nil || len(spec.Frequencies) == 0 {
		return nil, fmt.Errorf("no spectrum to plot")
	}
	if maxFreq <= 0 {
		maxFreq = spec.Nyquist()
	}

	p := plot.New()
	p.Title.Text = "Single-Sided Amplitude Spectrum (FFT)"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Amplitude"
	p.X.Min = 0
	p.X.Max = maxFreq
	p.X.Tick.Marker = plot.ConstantTicks(frequencyTicks(maxFreq, 10))
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(spec.Frequencies))
	for i := range spec.Frequencies {
		pts[i] = plotter.XY{X: spec.Frequencies[i], Y: spec.Amplitudes[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create spectrum line: %w", err)
	}
	line.Color = seriesColor
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	if peak, ok := spec.Peak(); ok && peak.Amplitude > 0 && peak.Frequency <= maxFreq {
		marker, err := plotter.NewScatter(plotter.XYs{{X: peak.Frequency, Y: peak.Amplitude}})
		if err == nil {
			marker.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
			p.Add(marker)
			p.Legend.Add(fmt.Sprintf("Peak %.3f Hz", peak.Frequency), marker)
			p.Legend.Top = true
		}
	}
	p.Y.Min = 0

	return renderPNG(p, size)
}

func renderPNG(p *plot.Plot, size PlotSize) ([]byte, error) {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultPlotSize
	}
	writer, err := p.WriterTo(vg.Points(size.Width), vg.Points(size.Height), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// frequencyTicks returns major ticks over [0, upper] at a 1-2-5 step chosen
// so that at most maxTicks intervals are drawn.
func frequencyTicks(upper float64, maxTicks int) []plot.Tick {
	if upper <= 0 || maxTicks <= 0 {
		return []plot.Tick{{Value: 0, Label: "0"}}
	}
	step := niceStep(upper / float64(maxTicks))

	var ticks []plot.Tick
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > upper*(1+1e-9) {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 6, 64)})
	}
	return ticks
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}
