package charts

import (
	"fmt"
	"path/filepath"
)

// LossChart mirrors AccuracyChart for the loss series.
type LossChart struct {
	dir             string
	training        [][]float64
	validation      [][]float64
	finalTraining   []float64
	finalValidation []float64
}

func NewLossChart(dir string, nFolds int) *LossChart {
	return &LossChart{
		dir:             dir,
		training:        make([][]float64, nFolds),
		validation:      make([][]float64, nFolds),
		finalTraining:   make([]float64, nFolds),
		finalValidation: make([]float64, nFolds),
	}
}

func (c *LossChart) Name() string {
	return "loss"
}

func (c *LossChart) Update(fold int, result FoldResult) error {
	history := result.History
	if err := history.Validate(); err != nil {
		return err
	}
	final, err := history.Final()
	if err != nil {
		return err
	}

	c.training[fold] = append([]float64(nil), history.TrainingLoss...)
	c.validation[fold] = append([]float64(nil), history.ValidationLoss...)
	c.finalTraining[fold] = final.TrainingLoss
	c.finalValidation[fold] = final.ValidationLoss

	return saveCurveChart(
		filepath.Join(c.dir, fmt.Sprintf("loss%02d.png", fold)),
		fmt.Sprintf("Loss - Fold %d", fold),
		"Epoch", "Loss",
		[]curveSeries{
			{name: "Training Loss", values: c.training[fold], color: trainingColor},
			{name: "Validation Loss", values: c.validation[fold], color: validationColor},
		})
}

func (c *LossChart) Finalize(table *SummaryTable) error {
	if err := table.AddFloatColumn("training_loss", c.finalTraining, 6); err != nil {
		return err
	}
	return table.AddFloatColumn("validation_loss", c.finalValidation, 6)
}
