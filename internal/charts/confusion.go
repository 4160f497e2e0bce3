package charts

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/JohnCrissman/field-classification/internal/evaluation"
)

// ConfusionMatrixChart accumulates the 2x2 confusion counts per fold and
// renders each as a heat map labeled with the class-name strings.
type ConfusionMatrixChart struct {
	dir    string
	counts []evaluation.ConfusionCounts
}

func NewConfusionMatrixChart(dir string, nFolds int) *ConfusionMatrixChart {
	return &ConfusionMatrixChart{
		dir:    dir,
		counts: make([]evaluation.ConfusionCounts, nFolds),
	}
}

func (c *ConfusionMatrixChart) Name() string {
	return "confusion matrix"
}

func (c *ConfusionMatrixChart) Update(fold int, result FoldResult) error {
	counts, err := evaluation.ComputeConfusionMatrix(result.ValidationLabels, result.Probabilities)
	if err != nil {
		return err
	}

	c.counts[fold] = counts
	return c.render(fold, result.ClassLabels)
}

// confusionGrid lays the counts out with predicted class on X and actual
// class on Y.
type confusionGrid struct {
	counts evaluation.ConfusionCounts
}

func (g confusionGrid) Dims() (cols, rows int) { return 2, 2 }
func (g confusionGrid) X(col int) float64      { return float64(col) }
func (g confusionGrid) Y(row int) float64      { return float64(row) }

func (g confusionGrid) Z(col, row int) float64 {
	switch {
	case col == 0 && row == 0:
		return float64(g.counts.TN)
	case col == 1 && row == 0:
		return float64(g.counts.FP)
	case col == 0 && row == 1:
		return float64(g.counts.FN)
	default:
		return float64(g.counts.TP)
	}
}

func (c *ConfusionMatrixChart) render(fold int, classLabels [2]string) error {
	counts := c.counts[fold]

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Confusion Matrix - Fold %d", fold)
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	heatMap := plotter.NewHeatMap(confusionGrid{counts: counts}, palette.Heat(12, 1))
	heatMap.Min = 0
	if heatMap.Max <= 0 {
		heatMap.Max = 1
	}
	p.Add(heatMap)

	ticks := plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: classLabels[0]},
		{Value: 1, Label: classLabels[1]},
	})
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks
	p.X.Min, p.X.Max = -0.5, 1.5
	p.Y.Min, p.Y.Max = -0.5, 1.5

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		Labels: []string{
			fmt.Sprintf("TN = %d", counts.TN),
			fmt.Sprintf("FP = %d", counts.FP),
			fmt.Sprintf("FN = %d", counts.FN),
			fmt.Sprintf("TP = %d", counts.TP),
		},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	return p.Save(6*vg.Inch, 6*vg.Inch, filepath.Join(c.dir, fmt.Sprintf("confusion_matrix%02d.png", fold)))
}

func (c *ConfusionMatrixChart) Finalize(table *SummaryTable) error {
	tp := make([]int, len(c.counts))
	fn := make([]int, len(c.counts))
	fp := make([]int, len(c.counts))
	tn := make([]int, len(c.counts))
	for i, counts := range c.counts {
		tp[i] = counts.TP
		fn[i] = counts.FN
		fp[i] = counts.FP
		tn[i] = counts.TN
	}

	if err := table.AddIntColumn("tp", tp); err != nil {
		return err
	}
	if err := table.AddIntColumn("fn", fn); err != nil {
		return err
	}
	if err := table.AddIntColumn("fp", fp); err != nil {
		return err
	}
	return table.AddIntColumn("tn", tn)
}
