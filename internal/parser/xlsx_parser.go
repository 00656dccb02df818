package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook returns the rows of the first sheet as records. Cell values
// are read raw so number formats cannot round the samples.
func readWorkbook(path string) ([]record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSchema)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	records := make([]record, 0, len(rows))
	for i, cells := range rows {
		if isBlank(cells) {
			continue
		}
		records = append(records, record{line: i + 1, cells: cells})
	}
	return records, nil
}
