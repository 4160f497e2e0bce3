package models

import (
	"fmt"
)

type ModelConfig struct {
	Algorithm    string
	LearningRate float64
	HiddenUnits  int
	Seed         int64
}

// CreateModel builds the classifier named by config.Algorithm, filling
// unset hyperparameters from DefaultConfig.
func CreateModel(config ModelConfig) (Model, error) {
	defaults := DefaultConfig(config.Algorithm)
	if config.LearningRate <= 0 {
		config.LearningRate = defaults.LearningRate
	}
	if config.HiddenUnits <= 0 {
		config.HiddenUnits = defaults.HiddenUnits
	}

	switch config.Algorithm {
	case "logistic":
		return NewLogistic(config.LearningRate, config.Seed), nil
	case "mlp":
		return NewMLP(config.LearningRate, config.HiddenUnits, config.Seed), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
	}
}

func DefaultConfig(algorithm string) ModelConfig {
	config := ModelConfig{Algorithm: algorithm, Seed: 1}

	switch algorithm {
	case "logistic":
		config.LearningRate = 0.0001
	case "mlp":
		config.LearningRate = 0.0001
		config.HiddenUnits = 16
	}

	return config
}
