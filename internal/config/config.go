package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"perceptron/internal/model"
	"perceptron/internal/trainer"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvEpochs       = "PERCEPTRON_EPOCHS"
	EnvLearningRate = "PERCEPTRON_LEARNING_RATE"
	EnvLogEvery     = "PERCEPTRON_LOG_EVERY"
	EnvSeed         = "PERCEPTRON_SEED"
	EnvOutput       = "PERCEPTRON_OUTPUT"
)

// Config captures the runtime knobs for a training run. The network
// topology is not configurable.
type Config struct {
	DatasetRoot  string  `yaml:"dataset_root"`
	Output       string  `yaml:"output"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	LogEvery     int     `yaml:"log_every"`
	Seed         int64   `yaml:"seed"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DatasetRoot  string
	Output       string
	Epochs       int
	LearningRate float64
	LogEvery     int
	Seed         int64
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Output:       model.DefaultFilename,
		Epochs:       trainer.DefaultEpochs,
		LearningRate: trainer.DefaultLearningRate,
		LogEvery:     trainer.DefaultLogEvery,
	}
}

// Load reads a Config from YAML on top of Default. Unknown keys are errors.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from PERCEPTRON_* variables. Values come from the
// process environment first and then from the nearest .env file found in
// dir or up to four of its parents.
func (c *Config) ApplyEnv(dir string) error {
	fileVals := map[string]string{}
	if path := findEnvFile(dir); path != "" {
		vals, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		fileVals = vals
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := lookup(EnvEpochs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEpochs, err)
		}
		c.Epochs = n
	}
	if v, ok := lookup(EnvLearningRate); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLearningRate, err)
		}
		c.LearningRate = f
	}
	if v, ok := lookup(EnvLogEvery); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogEvery, err)
		}
		c.LogEvery = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	return nil
}

func findEnvFile(dir string) string {
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, ".env")
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DatasetRoot != "" {
		c.DatasetRoot = o.DatasetRoot
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DatasetRoot == "" {
		return errors.New("dataset root must be set")
	}
	if c.Output == "" {
		return errors.New("output path must be set")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = trainer.DefaultLogEvery
	}
	return nil
}

// RunConfig converts c into the trainer's run configuration.
func (c *Config) RunConfig(report bool) trainer.RunConfig {
	return trainer.RunConfig{
		DatasetRoot:  c.DatasetRoot,
		Output:       c.Output,
		Epochs:       c.Epochs,
		LearningRate: c.LearningRate,
		LogEvery:     c.LogEvery,
		Seed:         c.Seed,
		Report:       report,
	}
}
