package preprocessing

import (
	"fmt"
)

// Scaler rescales raw pixel intensities into [0, 1]. The "intensity" mode
// divides by the fixed 8-bit maximum; "minmax" fits the observed range first.
type Scaler struct {
	ScaleType string
	IsFitted  bool
	MinValue  float64
	MaxValue  float64
}

func NewScaler(scaleType string) *Scaler {
	return &Scaler{
		ScaleType: scaleType,
		IsFitted:  false,
	}
}

func NewIntensityScaler() *Scaler {
	return &Scaler{
		ScaleType: "intensity",
		MinValue:  0,
		MaxValue:  255,
		IsFitted:  true,
	}
}

func (s *Scaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("empty dataset")
	}

	switch s.ScaleType {
	case "intensity":
		s.MinValue = 0
		s.MaxValue = 255
	case "minmax":
		s.MinValue = X[0][0]
		s.MaxValue = X[0][0]
		for _, row := range X {
			for _, v := range row {
				if v < s.MinValue {
					s.MinValue = v
				}
				if v > s.MaxValue {
					s.MaxValue = v
				}
			}
		}
	default:
		return fmt.Errorf("unknown scale type: %s", s.ScaleType)
	}

	s.IsFitted = true
	return nil
}

func (s *Scaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	span := s.MaxValue - s.MinValue
	if span == 0 {
		span = 1
	}

	result := make([][]float64, len(X))
	for i := range X {
		result[i] = make([]float64, len(X[i]))
		for j, v := range X[i] {
			result[i][j] = (v - s.MinValue) / span
		}
	}

	return result, nil
}

func (s *Scaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
