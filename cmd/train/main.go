package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/JohnCrissman/field-classification/internal/charts"
	"github.com/JohnCrissman/field-classification/internal/config"
	"github.com/JohnCrissman/field-classification/internal/data"
	"github.com/JohnCrissman/field-classification/internal/experiment"
	"github.com/JohnCrissman/field-classification/internal/models"
	"github.com/JohnCrissman/field-classification/internal/progress"
)

func main() {
	cfg := config.Default()

	configFile := flag.String("config", "", "Optional YAML file with training parameters")
	imgSize := flag.Int("s", cfg.ImageSize, "Image dimension in pixels (must be square)")
	colorMode := flag.Bool("color", false, "(default) Images are in RGB color mode")
	bwMode := flag.Bool("bw", false, "Images are in grayscale color mode")
	learningRate := flag.Float64("lr", cfg.LearningRate, "Learning rate for training")
	nFolds := flag.Int("f", cfg.NFolds, "Number of folds (minimum 2) for cross validation")
	nEpochs := flag.Int("e", cfg.NEpochs, "Number of epochs")
	batchSize := flag.Int("b", cfg.BatchSize, "Batch size for training")
	seed := flag.Int64("seed", cfg.Seed, "Random seed")
	algorithm := flag.String("algorithm", cfg.Algorithm, "Classifier to train (logistic|mlp)")
	hiddenUnits := flag.Int("hidden", cfg.HiddenUnits, "Hidden units for the mlp classifier")
	outputDir := flag.String("output", cfg.OutputDir, "Directory for charts, models and the summary table")
	saveModels := flag.Bool("save-models", cfg.SaveModels, "Save the trained model of each fold")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	if *colorMode && *bwMode {
		log.Fatal("-color and -bw are mutually exclusive")
	}

	if *configFile != "" {
		if err := cfg.ApplyFile(*configFile); err != nil {
			log.Fatalf("Configuration failed: %v", err)
		}
	}

	cfg.ClassDirs = [2]string{flag.Arg(0), flag.Arg(1)}

	// explicit flags win over config-file values
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.ImageSize = *imgSize
		case "bw", "color":
			cfg.Grayscale = *bwMode
		case "lr":
			cfg.LearningRate = *learningRate
		case "f":
			cfg.NFolds = *nFolds
		case "e":
			cfg.NEpochs = *nEpochs
		case "b":
			cfg.BatchSize = *batchSize
		case "seed":
			cfg.Seed = *seed
		case "algorithm":
			cfg.Algorithm = *algorithm
		case "hidden":
			cfg.HiddenUnits = *hiddenUnits
		case "output":
			cfg.OutputDir = *outputDir
		case "save-models":
			cfg.SaveModels = *saveModels
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	timer := progress.NewTimer("Model training")

	fmt.Println("Loading images...")
	images, err := data.LoadLabeledImages(cfg.ClassDirs, cfg.ImageSize, !cfg.Grayscale, cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}
	fmt.Printf("Loaded %d images (%d features each)\n", images.Len(), len(images.Features[0]))

	model, err := models.CreateModel(models.ModelConfig{
		Algorithm:    cfg.Algorithm,
		LearningRate: cfg.LearningRate,
		HiddenUnits:  cfg.HiddenUnits,
		Seed:         cfg.Seed,
	})
	if err != nil {
		log.Fatalf("Failed to create model: %v", err)
	}

	chartSet, err := charts.NewCharts(cfg.OutputDir, cfg.NFolds)
	if err != nil {
		log.Fatalf("Failed to set up charts: %v", err)
	}

	runner := experiment.NewRunner(images, model, chartSet, cfg.NFolds, cfg.NEpochs, cfg.BatchSize, cfg.Seed)
	runner.SaveModels = cfg.SaveModels

	fmt.Printf("Training %s model with %d-fold cross validation...\n", model.GetName(), cfg.NFolds)
	table, err := runner.Run()
	if err != nil {
		runner.Tracker.Report(os.Stderr)
		log.Fatalf("Cross validation failed: %v", err)
	}

	runner.Tracker.Report(os.Stdout)

	if mean, std, err := chartSet.MeanAUC(); err == nil {
		color.New(color.FgCyan).Printf("AUC: %.4f +/- %.4f over %d folds\n", mean, std, table.NumRows())
	}

	labels := cfg.ClassLabels()
	fmt.Printf("class 1: %s, class 2: %s\n", labels[0], labels[1])
	timer.Stop()
	timer.Results(os.Stdout)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Create and train classifiers for binary classification of images, using cross-fold validation.")
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  train [flags] <class-1-dir> <class-2-dir>")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}
