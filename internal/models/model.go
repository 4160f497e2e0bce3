package models

import (
	"github.com/JohnCrissman/field-classification/internal/data"
)

// Model is a trainable binary classifier. Reset discards any trained state
// and reinitializes deterministically from the model's seed; Fit trains for
// a number of epochs and reports the per-epoch history; PredictProbability
// returns the class-1 probability for each example, aligned with the input
// order.
type Model interface {
	Fit(training, validation *data.Dataset, epochs, batchSize int) (*History, error)
	PredictProbability(X [][]float64) ([]float64, error)
	Reset()
	GetType() string
	GetName() string
	GetParams() map[string]any
}

type BaseModel struct {
	Name   string
	Params map[string]any
}

func (bm *BaseModel) GetType() string {
	return bm.Name
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}
