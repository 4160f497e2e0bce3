package charts

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/JohnCrissman/field-classification/internal/evaluation"
	"github.com/JohnCrissman/field-classification/internal/models"
)

var ErrIncompleteFolds = errors.New("summary cannot be finalized before all folds complete")

// FoldResult bundles everything one fold produced: ground-truth validation
// labels, predicted class-1 probabilities in the same order, the per-epoch
// training history, and the two human-readable class labels.
type FoldResult struct {
	ValidationLabels []int
	Probabilities    []float64
	History          *models.History
	ClassLabels      [2]string
}

// Chart is one diagnostic accumulator. Update ingests a fold's results and
// persists that fold's chart image; Finalize writes the accumulated
// per-fold scalars into the shared summary table.
type Chart interface {
	Name() string
	Update(fold int, result FoldResult) error
	Finalize(table *SummaryTable) error
}

// Charts owns the fixed, ordered set of accumulators. Updates fan out to
// every accumulator in registration order; Finalize merges their columns
// into the summary table and writes final_data.csv.
type Charts struct {
	outputDir string
	nFolds    int
	roc       *ROCChart
	charts    []Chart
	updated   []bool
}

func NewCharts(outputDir string, nFolds int) (*Charts, error) {
	if nFolds < 1 {
		return nil, fmt.Errorf("chart set needs at least one fold, got %d", nFolds)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	roc := NewROCChart(outputDir, nFolds)
	return &Charts{
		outputDir: outputDir,
		nFolds:    nFolds,
		roc:       roc,
		charts: []Chart{
			roc,
			NewAccuracyChart(outputDir, nFolds),
			NewLossChart(outputDir, nFolds),
			NewConfusionMatrixChart(outputDir, nFolds),
		},
		updated: make([]bool, nFolds),
	}, nil
}

func (c *Charts) OutputDir() string {
	return c.outputDir
}

func (c *Charts) Update(fold int, result FoldResult) error {
	if fold < 0 || fold >= c.nFolds {
		return fmt.Errorf("fold index %d out of range [0, %d)", fold, c.nFolds)
	}
	if c.updated[fold] {
		return fmt.Errorf("fold %d already recorded", fold)
	}

	for _, chart := range c.charts {
		if err := chart.Update(fold, result); err != nil {
			return fmt.Errorf("%s chart update failed for fold %d: %w", chart.Name(), fold, err)
		}
	}

	c.updated[fold] = true
	return nil
}

func (c *Charts) Finalize() (*SummaryTable, error) {
	recorded := 0
	for _, done := range c.updated {
		if done {
			recorded++
		}
	}
	if recorded != c.nFolds {
		return nil, fmt.Errorf("%w: %d of %d folds recorded", ErrIncompleteFolds, recorded, c.nFolds)
	}

	table := NewSummaryTable(c.nFolds)
	for _, chart := range c.charts {
		if err := chart.Finalize(table); err != nil {
			return nil, fmt.Errorf("%s chart finalize failed: %w", chart.Name(), err)
		}
	}

	if err := table.WriteCSV(filepath.Join(c.outputDir, "final_data.csv")); err != nil {
		return nil, err
	}

	return table, nil
}

// MeanAUC reports the mean and standard deviation of the AUC values over
// the folds recorded so far. Errors if no fold has been recorded.
func (c *Charts) MeanAUC() (mean, std float64, err error) {
	aucs := make([]float64, 0, c.nFolds)
	for fold, done := range c.updated {
		if done {
			aucs = append(aucs, c.roc.aucs[fold])
		}
	}
	return evaluation.MeanStd(aucs)
}

// FoldAUC returns the AUC recorded for one fold.
func (c *Charts) FoldAUC(fold int) float64 {
	return c.roc.aucs[fold]
}

type curveSeries struct {
	name   string
	values []float64
	color  color.RGBA
}

var (
	trainingColor   = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	validationColor = color.RGBA{R: 220, G: 120, B: 20, A: 255}
	referenceColor  = color.RGBA{R: 200, G: 30, B: 30, A: 200}
)

// saveCurveChart renders one or more per-epoch series as lines on a fresh,
// independently-scoped plot surface and writes it to path.
func saveCurveChart(path, title, xLabel, yLabel string, series []curveSeries) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true

	for _, s := range series {
		xys := make(plotter.XYs, len(s.values))
		for i, v := range s.values {
			xys[i] = plotter.XY{X: float64(i + 1), Y: v}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
