package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/user/accel_spectrum_go/internal/parser"
)

// Summarize computes time-domain statistics of a detrended series. mean is
// the offset that was removed from it.
func Summarize(detrended []float64, mean float64) Summary {
	s := Summary{Samples: len(detrended), Mean: mean}
	if len(detrended) == 0 {
		s.RMS, s.StdDev, s.Peak, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.RMS = math.Sqrt(floats.Dot(detrended, detrended) / float64(len(detrended)))
	s.StdDev = stat.PopStdDev(detrended, nil)
	s.Min = floats.Min(detrended)
	s.Max = floats.Max(detrended)
	s.Peak = math.Max(math.Abs(s.Min), math.Abs(s.Max))
	return s
}

// AnalyzeRecording runs the full numeric pipeline on a loaded table:
// sampling-rate estimation, then magnitude detrending and the single-sided
// amplitude spectrum.
func AnalyzeRecording(table *parser.RawTable) (*Result, error) {
	times := table.Time()
	fs, err := EstimateSampleRate(times)
	if err != nil {
		return nil, err
	}

	ax, ay, az := table.Axes()
	detrended, mean, spec, err := analyzeAxes(ax, ay, az, fs)
	if err != nil {
		return nil, err
	}

	return &Result{
		Time:       times,
		Magnitude:  detrended,
		SampleRate: fs,
		Spectrum:   spec,
		Summary:    Summarize(detrended, mean),
		Dropped:    len(table.Dropped),
	}, nil
}
