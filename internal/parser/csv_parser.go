package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// record is one source row together with its 1-based line number.
type record struct {
	line  int
	cells []string
}

// Load reads an accelerometer recording from path and returns the validated,
// time-sorted table. Delimited text (comma, semicolon or tab) and .xlsx
// workbooks are accepted.
func Load(path string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	var (
		records []record
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path)
	case ".xls":
		return nil, fmt.Errorf("%w: %s (save as .xlsx or .csv)", ErrUnsupportedFormat, ext)
	default:
		records, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(records)
}

func readDelimited(path string) ([]record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return parseDelimited(string(data))
}

func parseDelimited(text string) ([]record, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // short rows are dropped later, not rejected here

	var records []record
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read delimited data: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(cells) {
			continue
		}
		records = append(records, record{line: line, cells: cells})
	}
	return records, nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the
// first non-empty line. Comma wins ties and the no-delimiter case.
func sniffDelimiter(text string) rune {
	first := ""
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			first = l
			break
		}
	}
	best, bestCount := ',', strings.Count(first, ",")
	for _, d := range []rune{';', '\t'} {
		if c := strings.Count(first, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// hasTimeHeader decides whether the first source row is a header: it must
// have at least NumColumns cells and its first cell must contain "time".
func hasTimeHeader(first []string) bool {
	if len(first) < NumColumns {
		return false
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(first[0])), timeLabelMarker)
}

// buildTable applies the header decision, keeps the first NumColumns
// columns, drops rows that fail numeric coercion and sorts by time.
func buildTable(records []record) (*RawTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrSchema)
	}

	width := len(records[0].cells)
	if width < NumColumns {
		return nil, fmt.Errorf("%w: got %d", ErrSchema, width)
	}

	table := &RawTable{HeaderUsed: hasTimeHeader(records[0].cells)}
	data := records
	if table.HeaderUsed {
		data = records[1:]
	}

	table.Rows = make([]Row, 0, len(data))
	for _, rec := range data {
		row, dropped := coerceRow(rec)
		if dropped != nil {
			table.Dropped = append(table.Dropped, *dropped)
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].Time < table.Rows[j].Time
	})
	return table, nil
}

func coerceRow(rec record) (Row, *DroppedRow) {
	var vals [NumColumns]float64
	for i := 0; i < NumColumns; i++ {
		if i >= len(rec.cells) {
			return Row{}, &DroppedRow{Line: rec.line, Column: i, Reason: fmt.Sprintf("missing %s value", ColumnNames[i])}
		}
		v, err := parseCell(rec.cells[i])
		if err != nil {
			return Row{}, &DroppedRow{Line: rec.line, Column: i, Value: rec.cells[i], Reason: fmt.Sprintf("%s: %v", ColumnNames[i], err)}
		}
		vals[i] = v
	}
	return Row{Time: vals[0], AX: vals[1], AY: vals[2], AZ: vals[3]}, nil
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
