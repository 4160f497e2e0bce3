package evaluation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/integrate"
)

var ErrDegenerateLabels = errors.New("validation fold contains a single class")

// predictionEpsilon breaks the exact-0.5 tie toward class 1 when rounding
// probabilities to hard predictions.
const predictionEpsilon = 1e-7

// ROCCurve is a receiver-operating-characteristic curve swept over the
// distinct probability thresholds in descending order. Point i is the
// (FPR, TPR) reached when predicting class 1 for every probability
// >= Thresholds[i]; the curve always starts at (0, 0) and ends at (1, 1).
type ROCCurve struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
}

func ComputeROC(labels []int, probabilities []float64) (*ROCCurve, error) {
	if err := validateBinaryPair(labels, probabilities); err != nil {
		return nil, err
	}

	positives, negatives := 0, 0
	for _, label := range labels {
		if label == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return nil, fmt.Errorf("%w: AUC is undefined", ErrDegenerateLabels)
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return probabilities[order[i]] > probabilities[order[j]]
	})

	curve := &ROCCurve{
		FPR:        []float64{0},
		TPR:        []float64{0},
		Thresholds: []float64{math.Inf(1)},
	}

	tp, fp := 0, 0
	for i, idx := range order {
		if i > 0 && probabilities[idx] != probabilities[order[i-1]] {
			curve.append(fp, tp, negatives, positives, probabilities[order[i-1]])
		}
		if labels[idx] == 1 {
			tp++
		} else {
			fp++
		}
	}
	curve.append(fp, tp, negatives, positives, probabilities[order[len(order)-1]])

	return curve, nil
}

func (c *ROCCurve) append(fp, tp, negatives, positives int, threshold float64) {
	c.FPR = append(c.FPR, float64(fp)/float64(negatives))
	c.TPR = append(c.TPR, float64(tp)/float64(positives))
	c.Thresholds = append(c.Thresholds, threshold)
}

// AUC integrates the curve over the false-positive-rate axis.
func (c *ROCCurve) AUC() float64 {
	return integrate.Trapezoidal(c.FPR, c.TPR)
}

// ConfusionCounts is the 2x2 count table of predicted vs actual binary
// outcomes.
type ConfusionCounts struct {
	TN int
	FP int
	FN int
	TP int
}

// ComputeConfusionMatrix converts probabilities to hard predictions with
// round(p + epsilon), so a probability of exactly 0.5 classifies as
// class 1, and tallies them against the true labels.
func ComputeConfusionMatrix(labels []int, probabilities []float64) (ConfusionCounts, error) {
	var counts ConfusionCounts

	if err := validateBinaryPair(labels, probabilities); err != nil {
		return counts, err
	}

	for i, p := range probabilities {
		predicted := int(math.Round(p + predictionEpsilon))
		if predicted > 1 {
			predicted = 1
		}

		switch {
		case labels[i] == 0 && predicted == 0:
			counts.TN++
		case labels[i] == 0 && predicted == 1:
			counts.FP++
		case labels[i] == 1 && predicted == 0:
			counts.FN++
		default:
			counts.TP++
		}
	}

	return counts, nil
}

func validateBinaryPair(labels []int, probabilities []float64) error {
	if len(labels) != len(probabilities) {
		return fmt.Errorf("labels and probabilities have different lengths: %d vs %d", len(labels), len(probabilities))
	}
	if len(labels) == 0 {
		return fmt.Errorf("labels are empty")
	}
	for i, label := range labels {
		if label != 0 && label != 1 {
			return fmt.Errorf("label at index %d is %d, expected 0 or 1", i, label)
		}
	}
	return nil
}

// MeanStd reports the mean and sample standard deviation of a metric
// across folds.
func MeanStd(values []float64) (mean, std float64, err error) {
	mean, err = stats.Mean(values)
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return mean, 0, nil
	}
	std, err = stats.StandardDeviationSample(values)
	if err != nil {
		return 0, 0, err
	}
	return mean, std, nil
}
