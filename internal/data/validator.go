package data

import (
	"fmt"
	"math"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

func (dv *DataValidator) ValidateDataset(X [][]float64, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	nFeatures := len(X[0])
	if nFeatures == 0 {
		return fmt.Errorf("features cannot be empty")
	}

	for i, sample := range X {
		if len(sample) != nFeatures {
			return fmt.Errorf("inconsistent feature count at sample %d: expected %d, got %d", i, nFeatures, len(sample))
		}
	}

	for i, sample := range X {
		for j, value := range sample {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("invalid value at sample %d, feature %d", i, j)
			}
		}
	}

	return nil
}

func (dv *DataValidator) ValidateBinaryLabels(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("labels are empty")
	}

	classCount := make(map[int]int)
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label at sample %d is %d, expected 0 or 1", i, label)
		}
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must have examples of both classes, found %d class(es)", len(classCount))
	}

	return nil
}

func (dv *DataValidator) ClassCounts(y []int) map[int]int {
	counts := make(map[int]int)
	for _, label := range y {
		counts[label]++
	}
	return counts
}
