package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/accel_spectrum_go/internal/parser"
)

func syntheticTable(n int, fs, f0 float64) *parser.RawTable {
	table := &parser.RawTable{Rows: make([]parser.Row, n)}
	for i := range table.Rows {
		ti := float64(i) / fs
		table.Rows[i] = parser.Row{
			Time: ti,
			AX:   0.3,
			AY:   -0.4,
			AZ:   9.81 + 0.2*math.Sin(2*math.Pi*f0*ti),
		}
	}
	return table
}

func TestAnalyzeRecording(t *testing.T) {
	table := syntheticTable(512, 64, 8)
	table.Dropped = []parser.DroppedRow{{Line: 7, Reason: "bad"}}

	res, err := AnalyzeRecording(table)
	require.NoError(t, err)

	assert.InDelta(t, 64.0, res.SampleRate, 1e-9)
	assert.InDelta(t, 1.0/64, res.SamplePeriod(), 1e-12)
	require.Len(t, res.Magnitude, 512)
	assert.Equal(t, table.Time(), res.Time)
	assert.Equal(t, 1, res.Dropped)

	assert.Len(t, res.Spectrum.Amplitudes, 257)
	peak, ok := res.Spectrum.Peak()
	require.True(t, ok)
	assert.InDelta(t, 8.0, peak.Frequency, res.Spectrum.BinWidth())

	assert.Equal(t, 512, res.Summary.Samples)
	assert.InDelta(t, math.Sqrt(0.09+0.16+9.81*9.81), res.Summary.Mean, 0.01)
	assert.InDelta(t, 0, res.Summary.Min+res.Summary.Max, 0.05)
}

func TestAnalyzeRecordingPropagatesErrors(t *testing.T) {
	flat := syntheticTable(16, 10, 1)
	for i := range flat.Rows {
		flat.Rows[i].Time = 0
	}
	_, err := AnalyzeRecording(flat)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = AnalyzeRecording(syntheticTable(3, 10, 1))
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{-1, 1, -1, 1}, 9.8)

	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, 9.8, s.Mean)
	assert.InDelta(t, 1, s.RMS, 1e-12)
	assert.InDelta(t, 1, s.StdDev, 1e-12)
	assert.Equal(t, 1.0, s.Peak)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	assert.Equal(t, 0, s.Samples)
	assert.True(t, math.IsNaN(s.RMS))
	assert.True(t, math.IsNaN(s.Peak))
}
