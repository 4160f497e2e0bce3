package experiment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnCrissman/field-classification/internal/charts"
	"github.com/JohnCrissman/field-classification/internal/data"
	"github.com/JohnCrissman/field-classification/internal/models"
)

// fakeModel predicts the first feature of each sample directly as the
// class-1 probability, and counts lifecycle calls.
type fakeModel struct {
	models.BaseModel
	resets int
	fits   int
	failAt int
}

func newFakeModel() *fakeModel {
	return &fakeModel{
		BaseModel: models.BaseModel{Name: "fake", Params: map[string]any{}},
		failAt:    -1,
	}
}

func (m *fakeModel) Reset() { m.resets++ }

func (m *fakeModel) Fit(training, validation *data.Dataset, epochs, batchSize int) (*models.History, error) {
	if m.fits == m.failAt {
		return nil, errors.New("injected training failure")
	}
	m.fits++

	history := &models.History{}
	for i := 0; i < epochs; i++ {
		history.Record(models.EpochStats{
			TrainingLoss:       0.5,
			TrainingAccuracy:   0.9,
			ValidationLoss:     0.6,
			ValidationAccuracy: 0.8,
		})
	}
	return history, nil
}

func (m *fakeModel) PredictProbability(features [][]float64) ([]float64, error) {
	probs := make([]float64, len(features))
	for i, row := range features {
		probs[i] = row[0]
	}
	return probs, nil
}

func (m *fakeModel) GetType() string { return "fake" }

func testImages() *data.LabeledImages {
	// First feature doubles as a clean probability signal for the fake
	// model, so every fold yields a valid ROC curve.
	features := [][]float64{
		{0.1}, {0.2}, {0.15}, {0.25},
		{0.9}, {0.8}, {0.85}, {0.75},
	}
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return &data.LabeledImages{
		Features:    features,
		Labels:      labels,
		ClassLabels: [2]string{"lycopodiaceae", "selaginellaceae"},
	}
}

func TestRunnerCompletesAllFolds(t *testing.T) {
	dir := t.TempDir()
	chartSet, err := charts.NewCharts(dir, 2)
	require.NoError(t, err)

	model := newFakeModel()
	runner := NewRunner(testImages(), model, chartSet, 2, 3, 2, 1)

	table, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, 2, model.resets)
	assert.Equal(t, 2, model.fits)

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2", rows[1][0])

	_, err = os.Stat(filepath.Join(dir, "final_data.csv"))
	assert.NoError(t, err)
}

func TestRunnerResetsBeforeEveryFold(t *testing.T) {
	chartSet, err := charts.NewCharts(t.TempDir(), 4)
	require.NoError(t, err)

	model := newFakeModel()
	runner := NewRunner(testImages(), model, chartSet, 4, 1, 2, 7)

	_, err = runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 4, model.resets)
	assert.Equal(t, 4, model.fits)
}

func TestRunnerAbortsOnTrainingFailure(t *testing.T) {
	dir := t.TempDir()
	chartSet, err := charts.NewCharts(dir, 2)
	require.NoError(t, err)

	model := newFakeModel()
	model.failAt = 1 // second fold fails

	runner := NewRunner(testImages(), model, chartSet, 2, 1, 2, 1)

	_, err = runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fold 1 failed")

	_, statErr := os.Stat(filepath.Join(dir, "final_data.csv"))
	assert.True(t, os.IsNotExist(statErr), "aborted run must not write a summary")
}

func TestRunnerRejectsTooManyFolds(t *testing.T) {
	chartSet, err := charts.NewCharts(t.TempDir(), 5)
	require.NoError(t, err)

	runner := NewRunner(testImages(), newFakeModel(), chartSet, 5, 1, 2, 1)

	_, err = runner.Run()
	assert.Error(t, err)
}

func TestRunnerSavesModelBundles(t *testing.T) {
	dir := t.TempDir()
	chartSet, err := charts.NewCharts(dir, 2)
	require.NoError(t, err)

	model, err := models.CreateModel(models.ModelConfig{Algorithm: "logistic", LearningRate: 0.1, Seed: 1})
	require.NoError(t, err)

	runner := NewRunner(testImages(), model, chartSet, 2, 5, 2, 1)
	runner.SaveModels = true

	_, err = runner.Run()
	require.NoError(t, err)

	for _, name := range []string{"model_fold00.gob", "model_fold01.gob"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoErrorf(t, err, "expected %s to be written", name)
	}
}
