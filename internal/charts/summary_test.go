package charts

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTableRowsAreOneBased(t *testing.T) {
	table := NewSummaryTable(3)
	require.NoError(t, table.AddFloatColumn("auc", []float64{0.9, 0.85, 0.95}, 6))

	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "3", rows[2][0])
}

func TestSummaryTableHeaderOrder(t *testing.T) {
	table := NewSummaryTable(1)
	require.NoError(t, table.AddFloatColumn("auc", []float64{0.9}, 6))
	require.NoError(t, table.AddIntColumn("tp", []int{4}))

	assert.Equal(t, []string{"Fold", "auc", "tp"}, table.Header())
}

func TestSummaryTableRejectsWrongLength(t *testing.T) {
	table := NewSummaryTable(2)
	assert.Error(t, table.AddFloatColumn("auc", []float64{0.9}, 6))
	assert.Error(t, table.AddIntColumn("tp", []int{1, 2, 3}))
}

func TestSummaryTableFloatRounding(t *testing.T) {
	table := NewSummaryTable(1)
	require.NoError(t, table.AddFloatColumn("auc", []float64{0.8333333333}, 4))

	cell, ok := table.Cell(0, "auc")
	require.True(t, ok)
	assert.Equal(t, "0.8333", cell.String())

	_, ok = table.Cell(0, "missing")
	assert.False(t, ok)
}

func TestSummaryTableWriteCSV(t *testing.T) {
	table := NewSummaryTable(2)
	require.NoError(t, table.AddFloatColumn("auc", []float64{0.9, 0.8}, 2))
	require.NoError(t, table.AddIntColumn("tp", []int{3, 5}))

	path := filepath.Join(t.TempDir(), "final_data.csv")
	require.NoError(t, table.WriteCSV(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Fold", "auc", "tp"}, records[0])
	assert.Equal(t, []string{"1", "0.9", "3"}, records[1])
	assert.Equal(t, []string{"2", "0.8", "5"}, records[2])
}
