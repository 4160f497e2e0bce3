package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/JohnCrissman/field-classification/internal/data"
)

// Logistic is a binary logistic-regression classifier trained with
// mini-batch gradient descent. Weight initialization and training are
// deterministic for a fixed seed.
type Logistic struct {
	BaseModel
	LearningRate float64
	Seed         int64
	Weights      []float64
	Bias         float64

	rng *rand.Rand
}

func NewLogistic(learningRate float64, seed int64) *Logistic {
	m := &Logistic{
		LearningRate: learningRate,
		Seed:         seed,
		BaseModel: BaseModel{
			Name: "Logistic",
			Params: map[string]any{
				"learning_rate": learningRate,
				"seed":          seed,
			},
		},
	}
	m.Reset()
	return m
}

func (m *Logistic) Reset() {
	m.rng = rand.New(rand.NewSource(m.Seed))
	m.Weights = nil
	m.Bias = 0
}

func (m *Logistic) Fit(training, validation *data.Dataset, epochs, batchSize int) (*History, error) {
	if err := validateFitInputs(training, validation, epochs, batchSize); err != nil {
		return nil, err
	}
	if m.rng == nil {
		m.Reset()
	}

	nFeatures := len(training.Features[0])
	if m.Weights == nil {
		m.Weights = initWeights(m.rng, nFeatures)
	}
	if len(m.Weights) != nFeatures {
		return nil, fmt.Errorf("model was initialized with %d features, got %d", len(m.Weights), nFeatures)
	}

	processor := data.NewBatchProcessor(batchSize)
	history := &History{}

	for epoch := 0; epoch < epochs; epoch++ {
		err := processor.ProcessBatches(training.Features, training.Labels, func(batchX [][]float64, batchY []int) error {
			m.step(batchX, batchY)
			return nil
		})
		if err != nil {
			return nil, err
		}

		trainLoss, trainAcc := m.evaluate(training)
		valLoss, valAcc := m.evaluate(validation)
		history.Record(EpochStats{
			TrainingLoss:       trainLoss,
			TrainingAccuracy:   trainAcc,
			ValidationLoss:     valLoss,
			ValidationAccuracy: valAcc,
		})
	}

	return history, nil
}

func (m *Logistic) step(X [][]float64, y []int) {
	gradW := make([]float64, len(m.Weights))
	gradB := 0.0

	for i, x := range X {
		p := sigmoid(dot(m.Weights, x) + m.Bias)
		delta := p - float64(y[i])
		for j, v := range x {
			gradW[j] += delta * v
		}
		gradB += delta
	}

	scale := m.LearningRate / float64(len(X))
	for j := range m.Weights {
		m.Weights[j] -= scale * gradW[j]
	}
	m.Bias -= scale * gradB
}

func (m *Logistic) evaluate(set *data.Dataset) (loss, accuracy float64) {
	correct := 0
	for i, x := range set.Features {
		p := sigmoid(dot(m.Weights, x) + m.Bias)
		loss += crossEntropy(float64(set.Labels[i]), p)
		if hardPrediction(p) == set.Labels[i] {
			correct++
		}
	}
	n := float64(set.Len())
	return loss / n, float64(correct) / n
}

func (m *Logistic) PredictProbability(X [][]float64) ([]float64, error) {
	if m.Weights == nil {
		return nil, fmt.Errorf("model must be trained before prediction")
	}

	probabilities := make([]float64, len(X))
	for i, x := range X {
		if len(x) != len(m.Weights) {
			return nil, fmt.Errorf("example %d has %d features, expected %d", i, len(x), len(m.Weights))
		}
		probabilities[i] = sigmoid(dot(m.Weights, x) + m.Bias)
	}
	return probabilities, nil
}

func validateFitInputs(training, validation *data.Dataset, epochs, batchSize int) error {
	if training == nil || training.Len() == 0 {
		return fmt.Errorf("training set is empty")
	}
	if validation == nil || validation.Len() == 0 {
		return fmt.Errorf("validation set is empty")
	}
	if epochs < 1 {
		return fmt.Errorf("epochs must be >= 1, got %d", epochs)
	}
	if batchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, got %d", batchSize)
	}
	return nil
}

func initWeights(rng *rand.Rand, n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = rng.NormFloat64() * 0.01
	}
	return weights
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// crossEntropy clamps probabilities away from 0 and 1 so the log stays
// finite.
func crossEntropy(y, p float64) float64 {
	const eps = 1e-12
	p = math.Min(math.Max(p, eps), 1-eps)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func hardPrediction(p float64) int {
	if p >= 0.5 {
		return 1
	}
	return 0
}
