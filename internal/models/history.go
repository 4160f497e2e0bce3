package models

import (
	"errors"
	"fmt"
)

var ErrEmptyHistory = errors.New("empty training history")

// History records per-epoch training and validation loss and accuracy for
// one training run.
type History struct {
	TrainingLoss       []float64
	TrainingAccuracy   []float64
	ValidationLoss     []float64
	ValidationAccuracy []float64
}

// EpochStats is the snapshot of one epoch, used to extract final-epoch
// values for the summary.
type EpochStats struct {
	TrainingLoss       float64
	TrainingAccuracy   float64
	ValidationLoss     float64
	ValidationAccuracy float64
}

func (h *History) Record(s EpochStats) {
	h.TrainingLoss = append(h.TrainingLoss, s.TrainingLoss)
	h.TrainingAccuracy = append(h.TrainingAccuracy, s.TrainingAccuracy)
	h.ValidationLoss = append(h.ValidationLoss, s.ValidationLoss)
	h.ValidationAccuracy = append(h.ValidationAccuracy, s.ValidationAccuracy)
}

func (h *History) Epochs() int {
	if h == nil {
		return 0
	}
	return len(h.TrainingLoss)
}

func (h *History) Validate() error {
	if h == nil || len(h.TrainingLoss) == 0 {
		return ErrEmptyHistory
	}
	n := len(h.TrainingLoss)
	if len(h.TrainingAccuracy) != n || len(h.ValidationLoss) != n || len(h.ValidationAccuracy) != n {
		return fmt.Errorf("training history series have different lengths: %d/%d/%d/%d",
			len(h.TrainingLoss), len(h.TrainingAccuracy), len(h.ValidationLoss), len(h.ValidationAccuracy))
	}
	return nil
}

// Final returns the last epoch's values.
func (h *History) Final() (EpochStats, error) {
	if err := h.Validate(); err != nil {
		return EpochStats{}, err
	}
	last := len(h.TrainingLoss) - 1
	return EpochStats{
		TrainingLoss:       h.TrainingLoss[last],
		TrainingAccuracy:   h.TrainingAccuracy[last],
		ValidationLoss:     h.ValidationLoss[last],
		ValidationAccuracy: h.ValidationAccuracy[last],
	}, nil
}
