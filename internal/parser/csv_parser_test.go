package parser

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestLoadTimestampHeaderIsSkipped(t *testing.T) {
	path := writeInput(t, "rec.csv", "Timestamp,accX,accY,accZ\n0.0,1,2,3\n0.5,4,5,6\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.True(t, table.HeaderUsed)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, Row{Time: 0, AX: 1, AY: 2, AZ: 3}, table.Rows[0])
	assert.Equal(t, Row{Time: 0.5, AX: 4, AY: 5, AZ: 6}, table.Rows[1])
	assert.Empty(t, table.Dropped)
}

func TestLoadHeaderlessFourColumns(t *testing.T) {
	path := writeInput(t, "rec.csv", "0.0,0.1,0.2,9.8\n0.1,0.2,0.3,9.7\n0.2,0.3,0.4,9.6\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.False(t, table.HeaderUsed)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, Row{Time: 0, AX: 0.1, AY: 0.2, AZ: 9.8}, table.Rows[0])
	assert.Equal(t, []float64{0, 0.1, 0.2}, table.Time())
}

func TestLoadHeaderWithoutTimeLabelIsTreatedAsData(t *testing.T) {
	// The first row is not a time header, so it is parsed as data and dropped.
	path := writeInput(t, "rec.csv", "t,x,y,z\n0,1,1,1\n1,2,2,2\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.False(t, table.HeaderUsed)
	assert.Equal(t, 2, table.Len())
	require.Len(t, table.Dropped, 1)
	assert.Equal(t, 1, table.Dropped[0].Line)
	assert.Equal(t, 0, table.Dropped[0].Column)
	assert.Equal(t, "t", table.Dropped[0].Value)
}

func TestLoadKeepsOnlyFirstFourColumns(t *testing.T) {
	path := writeInput(t, "rec.csv", "time_s,ax,ay,az,temp,label\n0,1,2,3,25.0,idle\n1,4,5,6,25.1,walk\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, Row{Time: 1, AX: 4, AY: 5, AZ: 6}, table.Rows[1])
}

func TestLoadDropsNonNumericRowsAndRecordsWhy(t *testing.T) {
	body := "time,ax,ay,az\n" +
		"0.0,1,1,1\n" +
		"0.1,oops,1,1\n" +
		"0.2,1,1\n" +
		"0.3,1,NaN,1\n" +
		"0.4, 2 ,2,2\n" +
		"\n" +
		"0.5,3,3,3\n"
	table, err := Load(writeInput(t, "rec.csv", body))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.4, 0.5}, table.Time())
	assert.Equal(t, Row{Time: 0.4, AX: 2, AY: 2, AZ: 2}, table.Rows[1])

	require.Len(t, table.Dropped, 3)
	assert.Equal(t, DroppedRow{Line: 3, Column: 1, Value: "oops", Reason: `ax: not a number "oops"`}, table.Dropped[0])
	assert.Equal(t, 4, table.Dropped[1].Line)
	assert.Equal(t, 3, table.Dropped[1].Column)
	assert.Equal(t, "missing az value", table.Dropped[1].Reason)
	assert.Equal(t, 5, table.Dropped[2].Line)
	assert.Equal(t, 2, table.Dropped[2].Column)
}

func TestLoadSortsByTime(t *testing.T) {
	path := writeInput(t, "rec.csv", "time,ax,ay,az\n0.3,3,0,0\n0.1,1,0,0\n0.2,2,0,0\n0.0,0,0,0\n")

	table, err := Load(path)
	require.NoError(t, err)

	times := table.Time()
	assert.True(t, sort.Float64sAreSorted(times))
	ax, _, _ := table.Axes()
	assert.Equal(t, []float64{0, 1, 2, 3}, ax)
}

func TestLoadPreservesRowCountForWellFormedInput(t *testing.T) {
	body := "time,ax,ay,az\n"
	for i := 0; i < 64; i++ {
		body += "0.01,0.1,0.2,0.3\n"
	}
	table, err := Load(writeInput(t, "rec.csv", body))
	require.NoError(t, err)
	assert.Equal(t, 64, table.Len())
	assert.Empty(t, table.Dropped)
}

func TestLoadSchemaErrors(t *testing.T) {
	cases := map[string]string{
		"three columns":  "time,ax,ay\n0,1,2\n",
		"headerless two": "0,1\n1,2\n",
		"empty":          "",
		"blank lines":    "\n\n   \n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeInput(t, "rec.csv", body))
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestLoadSniffsDelimiter(t *testing.T) {
	cases := map[string]string{
		"semicolon": "time;ax;ay;az\n0;1;2;3\n1;4;5;6\n",
		"tab":       "time\tax\tay\taz\n0\t1\t2\t3\n1\t4\t5\t6\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			table, err := Load(writeInput(t, "rec.txt", body))
			require.NoError(t, err)
			assert.True(t, table.HeaderUsed)
			require.Equal(t, 2, table.Len())
			assert.Equal(t, Row{Time: 1, AX: 4, AY: 5, AZ: 6}, table.Rows[1])
		})
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	table, err := Load(writeInput(t, "rec.csv", "\ufeff0,1,2,3\n1,4,5,6\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestLoadRejectsLegacyExcel(t *testing.T) {
	_, err := Load(writeInput(t, "rec.xls", "whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestHasTimeHeader(t *testing.T) {
	assert.True(t, hasTimeHeader([]string{"time", "a", "b", "c"}))
	assert.True(t, hasTimeHeader([]string{" Elapsed TIME (s) ", "a", "b", "c"}))
	assert.False(t, hasTimeHeader([]string{"time", "a", "b"}))
	assert.False(t, hasTimeHeader([]string{"0.0", "1", "2", "3"}))
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("a,b,c\n"))
	assert.Equal(t, ';', sniffDelimiter("\n1,5;2,5;3,5;4;5\n"))
	assert.Equal(t, '\t', sniffDelimiter("a\tb\tc"))
	assert.Equal(t, ',', sniffDelimiter("single"))
}
