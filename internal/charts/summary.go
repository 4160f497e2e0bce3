package charts

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// SummaryTable is the final cross-validation report: one row per fold,
// one column per accumulator-contributed metric, assembled once at
// finalization. Fold numbers are 1-based in the persisted output.
type SummaryTable struct {
	nFolds  int
	columns []summaryColumn
}

type summaryColumn struct {
	name  string
	cells []decimal.Decimal
}

func NewSummaryTable(nFolds int) *SummaryTable {
	return &SummaryTable{nFolds: nFolds}
}

func (t *SummaryTable) AddColumn(name string, cells []decimal.Decimal) error {
	if len(cells) != t.nFolds {
		return fmt.Errorf("column %s has %d values, expected one per fold (%d)", name, len(cells), t.nFolds)
	}
	t.columns = append(t.columns, summaryColumn{name: name, cells: cells})
	return nil
}

func (t *SummaryTable) AddFloatColumn(name string, values []float64, places int32) error {
	cells := make([]decimal.Decimal, len(values))
	for i, v := range values {
		cells[i] = decimal.NewFromFloat(v).Round(places)
	}
	return t.AddColumn(name, cells)
}

func (t *SummaryTable) AddIntColumn(name string, values []int) error {
	cells := make([]decimal.Decimal, len(values))
	for i, v := range values {
		cells[i] = decimal.NewFromInt(int64(v))
	}
	return t.AddColumn(name, cells)
}

func (t *SummaryTable) NumRows() int {
	return t.nFolds
}

// Header returns the column names, "Fold" first, then the metric columns
// in the order they were contributed.
func (t *SummaryTable) Header() []string {
	header := make([]string, 0, len(t.columns)+1)
	header = append(header, "Fold")
	for _, col := range t.columns {
		header = append(header, col.name)
	}
	return header
}

func (t *SummaryTable) Rows() [][]string {
	rows := make([][]string, t.nFolds)
	for fold := 0; fold < t.nFolds; fold++ {
		row := make([]string, 0, len(t.columns)+1)
		row = append(row, fmt.Sprintf("%d", fold+1))
		for _, col := range t.columns {
			row = append(row, col.cells[fold].String())
		}
		rows[fold] = row
	}
	return rows
}

func (t *SummaryTable) Cell(fold int, name string) (decimal.Decimal, bool) {
	for _, col := range t.columns {
		if col.name == name && fold >= 0 && fold < len(col.cells) {
			return col.cells[fold], true
		}
	}
	return decimal.Zero, false
}

func (t *SummaryTable) WriteCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(t.Header()); err != nil {
		return err
	}
	for _, row := range t.Rows() {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}
