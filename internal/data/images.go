package data

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/JohnCrissman/field-classification/internal/preprocessing"
)

// LabeledImages holds the full ordered collection of decoded images and
// their binary labels. The collection is immutable after loading; per-fold
// views are produced by Subset without touching the originals.
type LabeledImages struct {
	Features    [][]float64
	Labels      []int
	ClassLabels [2]string
	ImageSize   int
	Color       bool
}

// LoadLabeledImages reads every image under the two class directories,
// rescales each to size x size, flattens the pixels into a feature vector
// normalized to [0, 1], and shuffles the collection with the given seed.
// The directory base names become the human-readable class labels, with
// the first directory encoding to class 0.
func LoadLabeledImages(classDirs [2]string, imageSize int, color bool, seed int64) (*LabeledImages, error) {
	var features [][]float64
	var names []string

	for _, dir := range classDirs {
		scanner := NewDirectoryScanner(dir)
		files, err := scanner.ListImageFiles()
		if err != nil {
			return nil, err
		}

		className := ClassLabelFromDir(dir)
		for _, file := range files {
			pixels, err := loadImageFeatures(file, imageSize, color)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", file, err)
			}
			features = append(features, pixels)
			names = append(names, className)
		}
	}

	encoder := preprocessing.NewLabelEncoder()
	labels, err := encoder.FitTransform(names)
	if err != nil {
		return nil, err
	}

	scaler := preprocessing.NewIntensityScaler()
	features, err = scaler.Transform(features)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(features), func(i, j int) {
		features[i], features[j] = features[j], features[i]
		labels[i], labels[j] = labels[j], labels[i]
	})

	li := &LabeledImages{
		Features:    features,
		Labels:      labels,
		ClassLabels: [2]string{ClassLabelFromDir(classDirs[0]), ClassLabelFromDir(classDirs[1])},
		ImageSize:   imageSize,
		Color:       color,
	}

	validator := NewDataValidator()
	if err := validator.ValidateDataset(li.Features, li.Labels); err != nil {
		return nil, err
	}
	if err := validator.ValidateBinaryLabels(li.Labels); err != nil {
		return nil, err
	}

	return li, nil
}

func (li *LabeledImages) Len() int {
	return len(li.Features)
}

// Subset returns the examples at the given indices, in index order.
func (li *LabeledImages) Subset(indices []int) *Dataset {
	features := make([][]float64, len(indices))
	labels := make([]int, len(indices))
	for i, idx := range indices {
		features[i] = li.Features[idx]
		labels[i] = li.Labels[idx]
	}
	return &Dataset{Features: features, Labels: labels}
}

// ClassLabelFromDir extracts a class name from a directory path, e.g.
// "images/lycopodiaceae/" becomes "lycopodiaceae".
func ClassLabelFromDir(dir string) string {
	cleaned := strings.TrimRight(dir, string(os.PathSeparator)+"/")
	return filepath.Base(cleaned)
}

func loadImageFeatures(path string, size int, color bool) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	rect := image.Rect(0, 0, size, size)
	if color {
		scaled := image.NewNRGBA(rect)
		xdraw.ApproxBiLinear.Scale(scaled, rect, src, src.Bounds(), xdraw.Src, nil)

		pixels := make([]float64, 0, size*size*3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				offset := scaled.PixOffset(x, y)
				pixels = append(pixels,
					float64(scaled.Pix[offset]),
					float64(scaled.Pix[offset+1]),
					float64(scaled.Pix[offset+2]))
			}
		}
		return pixels, nil
	}

	scaled := image.NewGray(rect)
	xdraw.ApproxBiLinear.Scale(scaled, rect, src, src.Bounds(), xdraw.Src, nil)

	pixels := make([]float64, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pixels = append(pixels, float64(scaled.GrayAt(x, y).Y))
		}
	}
	return pixels, nil
}
