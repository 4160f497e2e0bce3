package evaluation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrInvalidFoldCount = errors.New("invalid fold count")

// Fold is one cross-validation round: a disjoint pair of index sets into
// the full collection. Across all folds the validation sets partition the
// index range exactly once.
type Fold struct {
	Training   []int
	Validation []int
}

// StratifiedKFoldSplitter deals the indices of each class round-robin into
// n folds after a seeded shuffle, so every fold preserves the global class
// ratio as closely as integer rounding allows. The assignment is
// deterministic for a fixed seed.
type StratifiedKFoldSplitter struct {
	nFolds     int
	randomSeed int64
	shuffle    bool
}

func NewStratifiedKFoldSplitter(nFolds int, randomSeed int64) *StratifiedKFoldSplitter {
	return &StratifiedKFoldSplitter{
		nFolds:     nFolds,
		randomSeed: randomSeed,
		shuffle:    true,
	}
}

func (s *StratifiedKFoldSplitter) Split(y []int) ([]Fold, error) {
	if s.nFolds < 2 {
		return nil, fmt.Errorf("%w: %d is not a valid number of folds, must be >= 2", ErrInvalidFoldCount, s.nFolds)
	}

	classIndices := make(map[int][]int)
	for i, label := range y {
		classIndices[label] = append(classIndices[label], i)
	}

	classes := make([]int, 0, len(classIndices))
	for class := range classIndices {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	for _, class := range classes {
		if len(classIndices[class]) < s.nFolds {
			return nil, fmt.Errorf("%w: %d folds exceeds the %d examples of class %d, stratification impossible",
				ErrInvalidFoldCount, s.nFolds, len(classIndices[class]), class)
		}
	}

	rng := rand.New(rand.NewSource(s.randomSeed))
	validation := make([][]int, s.nFolds)

	for _, class := range classes {
		indices := classIndices[class]
		if s.shuffle {
			rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		for i, idx := range indices {
			fold := i % s.nFolds
			validation[fold] = append(validation[fold], idx)
		}
	}

	folds := make([]Fold, s.nFolds)
	for f := 0; f < s.nFolds; f++ {
		sort.Ints(validation[f])

		inValidation := make(map[int]bool, len(validation[f]))
		for _, idx := range validation[f] {
			inValidation[idx] = true
		}

		training := make([]int, 0, len(y)-len(validation[f]))
		for i := range y {
			if !inValidation[i] {
				training = append(training, i)
			}
		}

		folds[f] = Fold{Training: training, Validation: validation[f]}
	}

	return folds, nil
}
