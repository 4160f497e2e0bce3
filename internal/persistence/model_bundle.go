package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/JohnCrissman/field-classification/internal/models"
)

// ModelBundle is one fold's trained classifier plus enough metadata to
// trace it back to the run that produced it.
type ModelBundle struct {
	Model     models.Model
	Metadata  BundleMetadata
	CreatedAt time.Time
}

type BundleMetadata struct {
	ModelName          string
	ClassLabels        [2]string
	Fold               int
	AUC                float64
	TrainingAccuracy   float64
	ValidationAccuracy float64
	TrainingTime       time.Duration
	Parameters         map[string]any
}

func registerModels() {
	gob.Register(&models.Logistic{})
	gob.Register(&models.MLP{})
	// concrete types carried inside the any-valued parameter map
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
}

func NewModelBundle(model models.Model) *ModelBundle {
	return &ModelBundle{
		Model:     model,
		CreatedAt: time.Now(),
		Metadata: BundleMetadata{
			ModelName:  model.GetName(),
			Parameters: model.GetParams(),
		},
	}
}

func (mb *ModelBundle) Save(filename string) error {
	registerModels()

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(mb); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	return nil
}

func LoadModelBundle(filename string) (*ModelBundle, error) {
	registerModels()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var bundle ModelBundle
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}

	return &bundle, nil
}

func (mb *ModelBundle) SaveMetadata(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Model: %s\n", mb.Metadata.ModelName)
	fmt.Fprintf(file, "Classes: %s, %s\n", mb.Metadata.ClassLabels[0], mb.Metadata.ClassLabels[1])
	fmt.Fprintf(file, "Fold: %d\n", mb.Metadata.Fold+1)
	fmt.Fprintf(file, "Created: %s\n", mb.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(file, "AUC: %.4f\n", mb.Metadata.AUC)
	fmt.Fprintf(file, "Training Accuracy: %.4f\n", mb.Metadata.TrainingAccuracy)
	fmt.Fprintf(file, "Validation Accuracy: %.4f\n", mb.Metadata.ValidationAccuracy)
	fmt.Fprintf(file, "Training Time: %v\n", mb.Metadata.TrainingTime)

	return nil
}
