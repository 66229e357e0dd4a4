package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Network.csv", cfg.Output)
	assert.Equal(t, 500, cfg.Epochs)
	assert.Equal(t, 0.01, cfg.LearningRate)
	assert.Equal(t, 50, cfg.LogEvery)
	assert.Equal(t, int64(0), cfg.Seed)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "train.yaml", `
# reference run with a fixed seed
dataset_root: "/data/shapes"
epochs: 120
learning_rate: 0.05
seed: 7
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/shapes", cfg.DatasetRoot)
	assert.Equal(t, 120, cfg.Epochs)
	assert.Equal(t, 0.05, cfg.LearningRate)
	assert.Equal(t, int64(7), cfg.Seed)
	// Keys missing from the file keep their defaults.
	assert.Equal(t, 50, cfg.LogEvery)
	assert.Equal(t, "Network.csv", cfg.Output)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, t.TempDir(), "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "bad.yaml", "hidden_units: 128\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PERCEPTRON_EPOCHS=42\nPERCEPTRON_OUTPUT=from-file.csv\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Setenv(EnvOutput, "from-env.csv")
	t.Setenv(EnvLearningRate, "0.2")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(nested))
	assert.Equal(t, 42, cfg.Epochs)
	assert.Equal(t, "from-env.csv", cfg.Output)
	assert.Equal(t, 0.2, cfg.LearningRate)
}

func TestApplyEnvInvalidNumber(t *testing.T) {
	t.Setenv(EnvSeed, "not-a-number")
	cfg := Default()
	require.Error(t, cfg.ApplyEnv(t.TempDir()))
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{DatasetRoot: "/data", Epochs: 10, Seed: 3})
	assert.Equal(t, "/data", cfg.DatasetRoot)
	assert.Equal(t, 10, cfg.Epochs)
	assert.Equal(t, int64(3), cfg.Seed)
	// Zero overrides leave values alone.
	assert.Equal(t, 0.01, cfg.LearningRate)
	assert.Equal(t, "Network.csv", cfg.Output)
}

func TestValidate(t *testing.T) {
	var nilCfg *Config
	require.Error(t, nilCfg.Validate())

	cfg := Default()
	require.Error(t, cfg.Validate(), "dataset root is required")

	cfg.DatasetRoot = "/data"
	cfg.LogEvery = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.LogEvery)

	cfg.Epochs = 0
	require.Error(t, cfg.Validate())

	cfg.Epochs = 1
	cfg.LearningRate = -1
	require.Error(t, cfg.Validate())
}

func TestRunConfig(t *testing.T) {
	cfg := Default()
	cfg.DatasetRoot = "/data"
	rc := cfg.RunConfig(true)
	assert.Equal(t, "/data", rc.DatasetRoot)
	assert.Equal(t, 500, rc.Epochs)
	assert.True(t, rc.Report)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
