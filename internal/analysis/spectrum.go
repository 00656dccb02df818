package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// VectorMagnitude returns sqrt(ax²+ay²+az²) per sample.
func VectorMagnitude(ax, ay, az []float64) ([]float64, error) {
	if len(ax) != len(ay) || len(ax) != len(az) {
		return nil, fmt.Errorf("%w: ax=%d ay=%d az=%d", ErrLengthMismatch, len(ax), len(ay), len(az))
	}
	out := make([]float64, len(ax))
	for i := range ax {
		out[i] = math.Sqrt(ax[i]*ax[i] + ay[i]*ay[i] + az[i]*az[i])
	}
	return out, nil
}

// Detrend returns x minus its arithmetic mean, and the mean that was removed.
func Detrend(x []float64) ([]float64, float64) {
	if len(x) == 0 {
		return nil, 0
	}
	mean := stat.Mean(x, nil)
	out := make([]float64, len(x))
	copy(out, x)
	floats.AddConst(-mean, out)
	return out, mean
}

// SingleSidedSpectrum computes the amplitude spectrum of the real series y
// sampled at fs. Bins are |DFT|/N for k = 0..N/2; every bin except the first
// and last is doubled when more than two bins exist.
func SingleSidedSpectrum(y []float64, fs float64) (*Spectrum, error) {
	n := len(y)
	if n < MinSamples {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientSamples, n, MinSamples)
	}
	if math.IsNaN(fs) || math.IsInf(fs, 0) || fs <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleRate, fs)
	}

	// Coefficients returns the n/2+1 non-negative frequency terms.
	coeffs := fourier.NewFFT(n).Coefficients(nil, y)

	half := n / 2
	amps := make([]float64, half+1)
	freqs := make([]float64, half+1)
	for k := 0; k <= half; k++ {
		amps[k] = cmplx.Abs(coeffs[k]) / float64(n)
		freqs[k] = fs * float64(k) / float64(n)
	}
	if len(amps) > 2 {
		floats.Scale(2, amps[1:len(amps)-1])
	}

	return &Spectrum{
		Frequencies: freqs,
		Amplitudes:  amps,
		SampleRate:  fs,
		N:           n,
	}, nil
}

// AnalyzeAxes derives the detrended magnitude series from the three axes and
// its single-sided spectrum at sampling frequency fs.
func AnalyzeAxes(ax, ay, az []float64, fs float64) ([]float64, *Spectrum, error) {
	detrended, _, spec, err := analyzeAxes(ax, ay, az, fs)
	return detrended, spec, err
}

func analyzeAxes(ax, ay, az []float64, fs float64) (detrended []float64, mean float64, spec *Spectrum, err error) {
	if len(ax) < MinSamples {
		return nil, 0, nil, fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientSamples, len(ax), MinSamples)
	}
	mag, err := VectorMagnitude(ax, ay, az)
	if err != nil {
		return nil, 0, nil, err
	}
	detrended, mean = Detrend(mag)
	spec, err = SingleSidedSpectrum(detrended, fs)
	if err != nil {
		return nil, 0, nil, err
	}
	return detrended, mean, spec, nil
}

// BinWidth is the frequency spacing fs/N.
func (s *Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.N)
}

// Nyquist is fs/2.
func (s *Spectrum) Nyquist() float64 {
	return s.SampleRate / 2
}

// Peak returns the largest non-DC bin. ok is false if the spectrum has only a DC bin.
func (s *Spectrum) Peak() (p Peak, ok bool) {
	if len(s.Amplitudes) < 2 {
		return Peak{}, false
	}
	k := floats.MaxIdx(s.Amplitudes[1:]) + 1
	return s.peakAt(k), true
}

// TopPeaks returns up to n local maxima (excluding DC), largest first.
// A bin is a local maximum if it exceeds its left neighbour and is not
// smaller than its right neighbour; the last bin only needs to exceed its left.
func (s *Spectrum) TopPeaks(n int) []Peak {
	amps := s.Amplitudes
	var peaks []Peak
	for k := 1; k < len(amps); k++ {
		if amps[k] <= amps[k-1] {
			continue
		}
		if k+1 < len(amps) && amps[k] < amps[k+1] {
			continue
		}
		peaks = append(peaks, s.peakAt(k))
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Amplitude > peaks[j].Amplitude
	})
	if n >= 0 && len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

// Below returns the bins with frequency <= maxHz. maxHz <= 0 returns s unchanged.
func (s *Spectrum) Below(maxHz float64) *Spectrum {
	if maxHz <= 0 {
		return s
	}
	end := sort.Search(len(s.Frequencies), func(i int) bool { return s.Frequencies[i] > maxHz })
	return &Spectrum{
		Frequencies: s.Frequencies[:end],
		Amplitudes:  s.Amplitudes[:end],
		SampleRate:  s.SampleRate,
		N:           s.N,
	}
}

func (s *Spectrum) peakAt(k int) Peak {
	return Peak{Bin: k, Frequency: s.Frequencies[k], Amplitude: s.Amplitudes[k]}
}
