package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()

	cfg := Default()
	root := t.TempDir()
	for i, name := range []string{"lycopodiaceae", "selaginellaceae"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.Mkdir(dir, 0755))
		cfg.ClassDirs[i] = dir
	}
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing class dir", func(c *Config) { c.ClassDirs[1] = filepath.Join(c.ClassDirs[1], "absent") }},
		{"image size too small", func(c *Config) { c.ImageSize = 3 }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"learning rate above one", func(c *Config) { c.LearningRate = 1.5 }},
		{"single fold", func(c *Config) { c.NFolds = 1 }},
		{"zero epochs", func(c *Config) { c.NEpochs = 0 }},
		{"batch size too small", func(c *Config) { c.BatchSize = 1 }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "svm" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
		})
	}
}

func TestApplyFileOverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	contents := "image_size: 64\nlearning_rate: 0.01\nn_folds: 5\nalgorithm: mlp\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg := Default()
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, 64, cfg.ImageSize)
	assert.Equal(t, 0.01, cfg.LearningRate)
	assert.Equal(t, 5, cfg.NFolds)
	assert.Equal(t, "mlp", cfg.Algorithm)
	// untouched keys keep their defaults
	assert.Equal(t, 25, cfg.NEpochs)
	assert.Equal(t, "graphs", cfg.OutputDir)
}

func TestApplyFileErrors(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.ApplyFile(filepath.Join(t.TempDir(), "absent.yaml")), ErrConfiguration)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image_size: [not a number"), 0644))
	assert.ErrorIs(t, cfg.ApplyFile(path), ErrConfiguration)
}

func TestClassLabels(t *testing.T) {
	cfg := Default()
	cfg.ClassDirs = [2]string{"images/lycopodiaceae/", "images/selaginellaceae"}
	assert.Equal(t, [2]string{"lycopodiaceae", "selaginellaceae"}, cfg.ClassLabels())
}
