package data

// Dataset is an ordered view of (feature, label) pairs. Subsets built per
// fold share no state with the collection they were derived from.
type Dataset struct {
	Features [][]float64
	Labels   []int
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

type BatchProcessor struct {
	batchSize int
}

func NewBatchProcessor(batchSize int) *BatchProcessor {
	return &BatchProcessor{batchSize: batchSize}
}

func (bp *BatchProcessor) ProcessBatches(X [][]float64, y []int, processFn func([][]float64, []int) error) error {
	totalSamples := len(X)

	for start := 0; start < totalSamples; start += bp.batchSize {
		end := start + bp.batchSize
		if end > totalSamples {
			end = totalSamples
		}

		batchX := X[start:end]
		batchY := y[start:end]

		if err := processFn(batchX, batchY); err != nil {
			return err
		}
	}

	return nil
}
