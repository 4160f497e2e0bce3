package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JohnCrissman/field-classification/internal/data"
)

var ErrConfiguration = errors.New("invalid configuration")

// Config carries every parameter of one cross-validation training run.
// Class directories come from the command line; the rest can be overlaid
// from a YAML file before flag values are applied.
type Config struct {
	ClassDirs    [2]string `yaml:"-"`
	ImageSize    int       `yaml:"image_size"`
	Grayscale    bool      `yaml:"grayscale"`
	LearningRate float64   `yaml:"learning_rate"`
	NFolds       int       `yaml:"n_folds"`
	NEpochs      int       `yaml:"n_epochs"`
	BatchSize    int       `yaml:"batch_size"`
	Seed         int64     `yaml:"seed"`
	Algorithm    string    `yaml:"algorithm"`
	HiddenUnits  int       `yaml:"hidden_units"`
	OutputDir    string    `yaml:"output_dir"`
	SaveModels   bool      `yaml:"save_models"`
}

func Default() Config {
	return Config{
		ImageSize:    256,
		Grayscale:    false,
		LearningRate: 0.0001,
		NFolds:       10,
		NEpochs:      25,
		BatchSize:    64,
		Seed:         1,
		Algorithm:    "logistic",
		HiddenUnits:  16,
		OutputDir:    "graphs",
		SaveModels:   true,
	}
}

func (c *Config) ApplyFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(contents, c); err != nil {
		return fmt.Errorf("%w: failed to parse config file: %v", ErrConfiguration, err)
	}
	return nil
}

// Validate checks every parameter eagerly, before any fold runs.
func (c *Config) Validate() error {
	for _, dir := range c.ClassDirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s is not a valid directory path", ErrConfiguration, dir)
		}
	}
	if c.ImageSize < 4 {
		return fmt.Errorf("%w: %d is not a valid image dimension (in pixels), must be >= 4", ErrConfiguration, c.ImageSize)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("%w: %f is not a valid learning rate, must be in range 0 (exclusive) to 1 (inclusive)", ErrConfiguration, c.LearningRate)
	}
	if c.NFolds < 2 {
		return fmt.Errorf("%w: %d is not a valid number of folds, must be >= 2", ErrConfiguration, c.NFolds)
	}
	if c.NEpochs < 1 {
		return fmt.Errorf("%w: %d is not a valid number of epochs, must be >= 1", ErrConfiguration, c.NEpochs)
	}
	if c.BatchSize < 2 {
		return fmt.Errorf("%w: %d is not a valid batch size, must be >= 2", ErrConfiguration, c.BatchSize)
	}
	switch c.Algorithm {
	case "logistic", "mlp":
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrConfiguration, c.Algorithm)
	}
	return nil
}

// ClassLabels derives the two human-readable class names from the
// directory base names.
func (c *Config) ClassLabels() [2]string {
	return [2]string{
		data.ClassLabelFromDir(c.ClassDirs[0]),
		data.ClassLabelFromDir(c.ClassDirs[1]),
	}
}
