package parser

import "errors"

// NumColumns is the number of leading columns kept from the input: time, ax, ay, az.
const NumColumns = 4

// ColumnNames are the semantic labels assigned to the kept columns, in order.
var ColumnNames = [NumColumns]string{"time", "ax", "ay", "az"}

// timeLabelMarker must appear (case-insensitively) in the first header cell
// for the first row to be treated as a header.
const timeLabelMarker = "time"

var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("input file not found")

	// ErrSchema indicates fewer than NumColumns usable columns.
	ErrSchema = errors.New("table must have at least 4 columns (time, ax, ay, az)")

	// ErrUnsupportedFormat indicates a file type the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Row is one validated sample. All fields are finite.
type Row struct {
	Time float64
	AX   float64
	AY   float64
	AZ   float64
}

// DroppedRow records an input row removed during numeric coercion.
type DroppedRow struct {
	Line   int    // 1-based line (or spreadsheet row) number in the source
	Column int    // 0-based column of the first offending or missing cell
	Value  string // the offending cell text
	Reason string
}

// RawTable is the validated, time-sorted accelerometer table.
type RawTable struct {
	Rows       []Row
	HeaderUsed bool         // true if the first source row was consumed as a header
	Dropped    []DroppedRow // rows removed during coercion, in source order
}

// Len returns the number of rows.
func (t *RawTable) Len() int { return len(t.Rows) }

// Time returns the time column.
func (t *RawTable) Time() []float64 {
	return t.column(func(r Row) float64 { return r.Time })
}

// Axes returns the three acceleration columns.
func (t *RawTable) Axes() (ax, ay, az []float64) {
	ax = t.column(func(r Row) float64 { return r.AX })
	ay = t.column(func(r Row) float64 { return r.AY })
	az = t.column(func(r Row) float64 { return r.AZ })
	return ax, ay, az
}

func (t *RawTable) column(get func(Row) float64) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = get(r)
	}
	return out
}
