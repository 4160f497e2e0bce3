package charts

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/JohnCrissman/field-classification/internal/evaluation"
)

// ROCChart accumulates one ROC curve and AUC value per fold, rendering a
// chart with a diagonal chance reference after every fold.
type ROCChart struct {
	dir    string
	curves []*evaluation.ROCCurve
	aucs   []float64
}

func NewROCChart(dir string, nFolds int) *ROCChart {
	return &ROCChart{
		dir:    dir,
		curves: make([]*evaluation.ROCCurve, nFolds),
		aucs:   make([]float64, nFolds),
	}
}

func (c *ROCChart) Name() string {
	return "ROC"
}

func (c *ROCChart) Update(fold int, result FoldResult) error {
	curve, err := evaluation.ComputeROC(result.ValidationLabels, result.Probabilities)
	if err != nil {
		return err
	}

	c.curves[fold] = curve
	c.aucs[fold] = curve.AUC()

	return c.render(fold)
}

func (c *ROCChart) render(fold int) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("ROC Curve - Fold %d", fold)
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05

	reference, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	reference.Color = referenceColor
	reference.Width = vg.Points(1.5)
	reference.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	curve := c.curves[fold]
	xys := make(plotter.XYs, len(curve.FPR))
	for i := range curve.FPR {
		xys[i] = plotter.XY{X: curve.FPR[i], Y: curve.TPR[i]}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = trainingColor
	line.Width = vg.Points(2)

	p.Add(reference, line)
	p.Legend.Add("Random", reference)
	p.Legend.Add(fmt.Sprintf("ROC (AUC = %0.2f)", c.aucs[fold]), line)

	return p.Save(6*vg.Inch, 6*vg.Inch, filepath.Join(c.dir, fmt.Sprintf("mean_ROC%02d.png", fold)))
}

func (c *ROCChart) Finalize(table *SummaryTable) error {
	return table.AddFloatColumn("auc", c.aucs, 6)
}
