package experiment

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/JohnCrissman/field-classification/internal/charts"
	"github.com/JohnCrissman/field-classification/internal/data"
	"github.com/JohnCrissman/field-classification/internal/evaluation"
	"github.com/JohnCrissman/field-classification/internal/models"
	"github.com/JohnCrissman/field-classification/internal/persistence"
	"github.com/JohnCrissman/field-classification/internal/progress"
)

// Runner drives the cross-validation loop: for each fold it resets the
// classifier, trains it on the fold's training subset, predicts on the
// validation subset, and feeds the results to the chart set. Folds run
// strictly one at a time; the first failure aborts the run without
// writing a summary. Per-fold chart images persist as folds complete.
type Runner struct {
	Images     *data.LabeledImages
	Model      models.Model
	Charts     *charts.Charts
	NFolds     int
	NEpochs    int
	BatchSize  int
	Seed       int64
	SaveModels bool
	Tracker    *progress.Tracker
}

func NewRunner(images *data.LabeledImages, model models.Model, chartSet *charts.Charts, nFolds, nEpochs, batchSize int, seed int64) *Runner {
	return &Runner{
		Images:    images,
		Model:     model,
		Charts:    chartSet,
		NFolds:    nFolds,
		NEpochs:   nEpochs,
		BatchSize: batchSize,
		Seed:      seed,
		Tracker:   progress.NewTracker(nFolds),
	}
}

func (r *Runner) Run() (*charts.SummaryTable, error) {
	splitter := evaluation.NewStratifiedKFoldSplitter(r.NFolds, r.Seed)
	folds, err := splitter.Split(r.Images.Labels)
	if err != nil {
		return nil, err
	}

	for index, fold := range folds {
		r.Tracker.StartFold(index)

		if err := r.runFold(index, fold); err != nil {
			r.Tracker.FailFold(index, err)
			return nil, fmt.Errorf("fold %d failed: %w", index, err)
		}

		r.Tracker.CompleteFold(index)
		log.Printf("fold %d/%d completed in %v", index+1, r.NFolds, r.Tracker.Fold(index).Duration())
	}

	return r.Charts.Finalize()
}

func (r *Runner) runFold(index int, fold evaluation.Fold) error {
	r.Model.Reset()

	training := r.Images.Subset(fold.Training)
	validation := r.Images.Subset(fold.Validation)

	history, err := r.Model.Fit(training, validation, r.NEpochs, r.BatchSize)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	probabilities, err := r.Model.PredictProbability(validation.Features)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	err = r.Charts.Update(index, charts.FoldResult{
		ValidationLabels: validation.Labels,
		Probabilities:    probabilities,
		History:          history,
		ClassLabels:      r.Images.ClassLabels,
	})
	if err != nil {
		return err
	}

	if r.SaveModels {
		r.saveFoldModel(index, history)
	}

	return nil
}

// saveFoldModel persists the trained classifier for one fold. A save
// failure is logged but does not abort the run.
func (r *Runner) saveFoldModel(index int, history *models.History) {
	bundle := persistence.NewModelBundle(r.Model)
	bundle.Metadata.Fold = index
	bundle.Metadata.ClassLabels = r.Images.ClassLabels
	bundle.Metadata.AUC = r.Charts.FoldAUC(index)
	bundle.Metadata.TrainingTime = r.Tracker.Fold(index).Duration()
	if final, err := history.Final(); err == nil {
		bundle.Metadata.TrainingAccuracy = final.TrainingAccuracy
		bundle.Metadata.ValidationAccuracy = final.ValidationAccuracy
	}

	path := filepath.Join(r.Charts.OutputDir(), fmt.Sprintf("model_fold%02d.gob", index))
	if err := bundle.Save(path); err != nil {
		log.Printf("failed to save model for fold %d: %v", index, err)
	}
}
