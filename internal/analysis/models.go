package analysis

import "errors"

// MinSamples is the smallest series accepted for spectral analysis.
const MinSamples = 4

var (
	// ErrInvalidTime indicates a time column with no finite, strictly positive interval.
	ErrInvalidTime = errors.New("time vector is invalid (non-increasing or too short)")

	// ErrInsufficientSamples indicates fewer than MinSamples samples.
	ErrInsufficientSamples = errors.New("not enough samples for FFT")

	// ErrLengthMismatch indicates axis columns of different lengths.
	ErrLengthMismatch = errors.New("axis columns differ in length")

	// ErrInvalidSampleRate indicates a sampling frequency that is not positive and finite.
	ErrInvalidSampleRate = errors.New("sampling frequency must be positive and finite")
)

// Spectrum is a single-sided amplitude spectrum. Frequencies[k] = SampleRate*k/N
// and both slices have N/2+1 entries.
type Spectrum struct {
	Frequencies []float64
	Amplitudes  []float64
	SampleRate  float64
	N           int // length of the transformed series
}

// Peak is one spectral bin.
type Peak struct {
	Bin       int
	Frequency float64
	Amplitude float64
}

// Summary holds time-domain statistics of a magnitude series.
type Summary struct {
	Samples int
	Mean    float64 // mean of the raw magnitude, i.e. the removed DC offset
	RMS     float64 // of the detrended series
	StdDev  float64 // population standard deviation of the detrended series
	Peak    float64 // max |value| of the detrended series
	Min     float64
	Max     float64
}

// Result bundles every output of one pipeline run.
type Result struct {
	Time       []float64 // timestamps, sorted
	Magnitude  []float64 // detrended vector magnitude, aligned with Time
	SampleRate float64   // Hz
	Spectrum   *Spectrum
	Summary    Summary
	Dropped    int // rows removed by the loader
}

// SamplePeriod is the period implied by the estimated sampling frequency.
func (r *Result) SamplePeriod() float64 {
	return 1 / r.SampleRate
}
