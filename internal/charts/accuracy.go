package charts

import (
	"fmt"
	"path/filepath"
)

// AccuracyChart accumulates the per-epoch accuracy curves for every fold
// and retains the final-epoch training/validation pair for the summary.
type AccuracyChart struct {
	dir             string
	training        [][]float64
	validation      [][]float64
	finalTraining   []float64
	finalValidation []float64
}

func NewAccuracyChart(dir string, nFolds int) *AccuracyChart {
	return &AccuracyChart{
		dir:             dir,
		training:        make([][]float64, nFolds),
		validation:      make([][]float64, nFolds),
		finalTraining:   make([]float64, nFolds),
		finalValidation: make([]float64, nFolds),
	}
}

func (c *AccuracyChart) Name() string {
	return "accuracy"
}

func (c *AccuracyChart) Update(fold int, result FoldResult) error {
	history := result.History
	if err := history.Validate(); err != nil {
		return err
	}
	final, err := history.Final()
	if err != nil {
		return err
	}

	c.training[fold] = append([]float64(nil), history.TrainingAccuracy...)
	c.validation[fold] = append([]float64(nil), history.ValidationAccuracy...)
	c.finalTraining[fold] = final.TrainingAccuracy
	c.finalValidation[fold] = final.ValidationAccuracy

	return saveCurveChart(
		filepath.Join(c.dir, fmt.Sprintf("accuracy%02d.png", fold)),
		fmt.Sprintf("Accuracy - Fold %d", fold),
		"Epoch", "Accuracy",
		[]curveSeries{
			{name: "Training Accuracy", values: c.training[fold], color: trainingColor},
			{name: "Validation Accuracy", values: c.validation[fold], color: validationColor},
		})
}

func (c *AccuracyChart) Finalize(table *SummaryTable) error {
	if err := table.AddFloatColumn("training_acc", c.finalTraining, 6); err != nil {
		return err
	}
	return table.AddFloatColumn("validation_acc", c.finalValidation, 6)
}
