package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/JohnCrissman/field-classification/internal/data"
)

// MLP is a one-hidden-layer perceptron with a tanh hidden activation and a
// sigmoid output, trained with mini-batch gradient descent. Deterministic
// for a fixed seed.
type MLP struct {
	BaseModel
	LearningRate  float64
	HiddenUnits   int
	Seed          int64
	HiddenWeights [][]float64
	HiddenBias    []float64
	OutputWeights []float64
	OutputBias    float64

	rng *rand.Rand
}

func NewMLP(learningRate float64, hiddenUnits int, seed int64) *MLP {
	m := &MLP{
		LearningRate: learningRate,
		HiddenUnits:  hiddenUnits,
		Seed:         seed,
		BaseModel: BaseModel{
			Name: "MLP",
			Params: map[string]any{
				"learning_rate": learningRate,
				"hidden_units":  hiddenUnits,
				"seed":          seed,
			},
		},
	}
	m.Reset()
	return m
}

func (m *MLP) Reset() {
	m.rng = rand.New(rand.NewSource(m.Seed))
	m.HiddenWeights = nil
	m.HiddenBias = nil
	m.OutputWeights = nil
	m.OutputBias = 0
}

func (m *MLP) initLayers(nFeatures int) {
	m.HiddenWeights = make([][]float64, m.HiddenUnits)
	for h := range m.HiddenWeights {
		m.HiddenWeights[h] = initWeights(m.rng, nFeatures)
	}
	m.HiddenBias = make([]float64, m.HiddenUnits)
	m.OutputWeights = initWeights(m.rng, m.HiddenUnits)
	m.OutputBias = 0
}

func (m *MLP) Fit(training, validation *data.Dataset, epochs, batchSize int) (*History, error) {
	if err := validateFitInputs(training, validation, epochs, batchSize); err != nil {
		return nil, err
	}
	if m.rng == nil {
		m.Reset()
	}

	nFeatures := len(training.Features[0])
	if m.HiddenWeights == nil {
		m.initLayers(nFeatures)
	}
	if len(m.HiddenWeights[0]) != nFeatures {
		return nil, fmt.Errorf("model was initialized with %d features, got %d", len(m.HiddenWeights[0]), nFeatures)
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

func (m *MLP) forward(x []float64) (hidden []float64, output float64) {
	hidden = make([]float64, m.HiddenUnits)
	for h := range hidden {
		hidden[h] = math.Tanh(dot(m.HiddenWeights[h], x) + m.HiddenBias[h])
	}
	return hidden, sigmoid(dot(m.OutputWeights, hidden) + m.OutputBias)
}

func (m *MLP) step(X [][]float64, y []int) {
	nFeatures := len(X[0])

	gradHW := make([][]float64, m.HiddenUnits)
	for h := range gradHW {
		gradHW[h] = make([]float64, nFeatures)
	}
	gradHB := make([]float64, m.HiddenUnits)
	gradOW := make([]float64, m.HiddenUnits)
	gradOB := 0.0

	for i, x := range X {
		hidden, p := m.forward(x)
		delta := p - float64(y[i])

		for h := range hidden {
			gradOW[h] += delta * hidden[h]
			// backprop through tanh
			dHidden := delta * m.OutputWeights[h] * (1 - hidden[h]*hidden[h])
			for j, v := range x {
				gradHW[h][j] += dHidden * v
			}
			gradHB[h] += dHidden
		}
		gradOB += delta
	}

	scale := m.LearningRate / float64(len(X))
	for h := range gradHW {
		for j := range gradHW[h] {
			m.HiddenWeights[h][j] -= scale * gradHW[h][j]
		}
		m.HiddenBias[h] -= scale * gradHB[h]
		m.OutputWeights[h] -= scale * gradOW[h]
	}
	m.OutputBias -= scale * gradOB
}

func (m *MLP) evaluate(set *data.Dataset) (loss, accuracy float64) {
	correct := 0
	for i, x := range set.Features {
		_, p := m.forward(x)
		loss += crossEntropy(float64(set.Labels[i]), p)
		if hardPrediction(p) == set.Labels[i] {
			correct++
		}
	}
	n := float64(set.Len())
	return loss / n, float64(correct) / n
}

func (m *MLP) PredictProbability(X [][]float64) ([]float64, error) {
	if m.HiddenWeights == nil {
		return nil, fmt.Errorf("model must be trained before prediction")
	}

	probabilities := make([]float64, len(X))
	for i, x := range X {
		if len(x) != len(m.HiddenWeights[0]) {
			return nil, fmt.Errorf("example %d has %d features, expected %d", i, len(x), len(m.HiddenWeights[0]))
		}
		_, probabilities[i] = m.forward(x)
	}
	return probabilities, nil
}
