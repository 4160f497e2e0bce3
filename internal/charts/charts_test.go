package charts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnCrissman/field-classification/internal/models"
)

func testHistory(epochs int) *models.History {
	h := &models.History{}
	for i := 0; i < epochs; i++ {
		progress := float64(i+1) / float64(epochs)
		h.Record(models.EpochStats{
			TrainingLoss:       1.0 - 0.5*progress,
			TrainingAccuracy:   0.5 + 0.4*progress,
			ValidationLoss:     1.1 - 0.5*progress,
			ValidationAccuracy: 0.5 + 0.3*progress,
		})
	}
	return h
}

func testFoldResult() FoldResult {
	return FoldResult{
		ValidationLabels: []int{0, 0, 1, 1},
		Probabilities:    []float64{0.1, 0.6, 0.4, 0.9},
		History:          testHistory(3),
		ClassLabels:      [2]string{"lycopodiaceae", "selaginellaceae"},
	}
}

func TestChartsUpdateAndFinalize(t *testing.T) {
	dir := t.TempDir()
	set, err := NewCharts(dir, 2)
	require.NoError(t, err)

	require.NoError(t, set.Update(0, testFoldResult()))
	require.NoError(t, set.Update(1, testFoldResult()))

	table, err := set.Finalize()
	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())

	assert.Equal(t, []string{
		"Fold", "auc",
		"training_acc", "validation_acc",
		"training_loss", "validation_loss",
		"tp", "fn", "fp", "tn",
	}, table.Header())

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2", rows[1][0])

	for _, name := range []string{
		"mean_ROC00.png", "mean_ROC01.png",
		"accuracy00.png", "accuracy01.png",
		"loss00.png", "loss01.png",
		"confusion_matrix00.png", "confusion_matrix01.png",
		"final_data.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoErrorf(t, err, "expected %s to be written", name)
	}
}

func TestChartsRejectsDuplicateFold(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 2)
	require.NoError(t, err)

	require.NoError(t, set.Update(0, testFoldResult()))
	assert.Error(t, set.Update(0, testFoldResult()))
}

func TestChartsRejectsFoldOutOfRange(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 2)
	require.NoError(t, err)

	assert.Error(t, set.Update(-1, testFoldResult()))
	assert.Error(t, set.Update(2, testFoldResult()))
}

func TestChartsFinalizeBeforeAllFoldsFails(t *testing.T) {
	dir := t.TempDir()
	set, err := NewCharts(dir, 3)
	require.NoError(t, err)

	require.NoError(t, set.Update(0, testFoldResult()))

	_, err = set.Finalize()
	assert.ErrorIs(t, err, ErrIncompleteFolds)

	_, statErr := os.Stat(filepath.Join(dir, "final_data.csv"))
	assert.True(t, os.IsNotExist(statErr), "no summary may be written before all folds complete")
}

func TestChartsRejectsSingleClassFold(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 1)
	require.NoError(t, err)

	result := testFoldResult()
	result.ValidationLabels = []int{1, 1, 1, 1}

	assert.Error(t, set.Update(0, result))
}

func TestChartsRejectsEmptyHistory(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 1)
	require.NoError(t, err)

	result := testFoldResult()
	result.History = nil

	err = set.Update(0, result)
	assert.ErrorIs(t, err, models.ErrEmptyHistory)
}

func TestChartsMeanAUC(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 2)
	require.NoError(t, err)

	perfect := testFoldResult()
	perfect.Probabilities = []float64{0.1, 0.2, 0.8, 0.9}
	require.NoError(t, set.Update(0, perfect))
	require.NoError(t, set.Update(1, perfect))

	mean, std, err := set.MeanAUC()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 1e-12)
	assert.InDelta(t, 0.0, std, 1e-12)
	assert.Equal(t, 1.0, set.FoldAUC(0))
}

func TestMeanAUCIgnoresUnrecordedFolds(t *testing.T) {
	set, err := NewCharts(t.TempDir(), 3)
	require.NoError(t, err)

	_, _, err = set.MeanAUC()
	assert.Error(t, err, "no folds recorded yet")

	perfect := testFoldResult()
	perfect.Probabilities = []float64{0.1, 0.2, 0.8, 0.9}
	require.NoError(t, set.Update(0, perfect))

	// the two pending folds must not drag the mean toward zero
	mean, std, err := set.MeanAUC()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 1e-12)
	assert.InDelta(t, 0.0, std, 1e-12)
}
