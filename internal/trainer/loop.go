package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"perceptron/internal/dataset"
	"perceptron/internal/metrics"
	"perceptron/internal/model"
)

// Reference hyperparameters.
const (
	DefaultEpochs       = 500
	DefaultLearningRate = 0.01
	DefaultLogEvery     = 50
)

// Options configures the epoch loop.
type Options struct {
	Epochs       int
	LearningRate float64
	LogEvery     int
	// RunID tags every log line; a random UUID is used when empty.
	RunID string
}

// Result summarizes a finished training loop.
type Result struct {
	RunID   string
	Epochs  int
	History []float64
	// FinalLoss is the mean loss accumulated during the last epoch.
	FinalLoss float64
}

// Train runs opts.Epochs passes of per-sample SGD over data in stored order,
// mutating params in place. The mean loss is logged on epoch 0 and every
// LogEvery epochs after it. There is no early stopping; ctx is only
// consulted between epochs.
func Train(ctx context.Context, params *model.Params, data dataset.Dataset, opts Options) (Result, error) {
	if opts.Epochs <= 0 {
		return Result{}, fmt.Errorf("trainer: epochs must be > 0 (got %d)", opts.Epochs)
	}
	if opts.LearningRate <= 0 {
		return Result{}, fmt.Errorf("trainer: learning rate must be > 0 (got %g)", opts.LearningRate)
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = DefaultLogEvery
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	res := Result{RunID: opts.RunID, History: make([]float64, 0, opts.Epochs)}
	var window metrics.Window

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		total := 0.0
		for i, s := range data {
			loss, err := params.TrainSample(s.Input, s.Target, opts.LearningRate)
			if err != nil {
				return res, fmt.Errorf("trainer: sample %d (%s): %w", i, s.Path, err)
			}
			total += loss
		}
		mean := meanLoss(total, len(data))

		res.Epochs++
		res.History = append(res.History, mean)
		res.FinalLoss = mean
		window.Record(len(data), time.Since(start), mean)

		if epoch%opts.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("run=%s epoch=%d loss=%.6f samples_per_sec=%.1f epoch_ms=%.2f",
				opts.RunID,
				epoch,
				snap.LastLoss,
				snap.SamplesPerSec,
				snap.AvgEpochMS,
			)
		}
	}

	return res, nil
}

func meanLoss(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// RunConfig captures everything the training command needs.
type RunConfig struct {
	DatasetRoot  string
	Output       string
	Epochs       int
	LearningRate float64
	LogEvery     int
	// Seed for parameter initialization; zero seeds from the clock.
	Seed int64
	// Report logs a prediction for every training sample after training.
	Report bool
}

// Run loads the dataset, initializes and trains a network of
// model.DefaultShape, and saves its parameters to cfg.Output.
func Run(ctx context.Context, cfg RunConfig) (Result, error) {
	if cfg.DatasetRoot == "" {
		return Result{}, errors.New("trainer: dataset root must be set")
	}
	if cfg.Output == "" {
		cfg.Output = model.DefaultFilename
	}
	runID := uuid.NewString()
	log.Printf("run=%s %s", runID, metrics.DetectHost())

	data, err := dataset.Load(cfg.DatasetRoot, dataset.LoadOptions{ImageSize: model.ImageSize})
	if err != nil {
		return Result{}, err
	}
	log.Printf("run=%s loaded samples=%d", runID, len(data))

	params, err := model.New(model.DefaultShape)
	if err != nil {
		return Result{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params.Initialize(rand.New(rand.NewSource(seed)))
	log.Printf("run=%s shape=%s seed=%d epochs=%d lr=%g", runID, params.Shape(), seed, cfg.Epochs, cfg.LearningRate)

	res, err := Train(ctx, params, data, Options{
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
		LogEvery:     cfg.LogEvery,
		RunID:        runID,
	})
	if err != nil {
		return res, err
	}

	if cfg.Report {
		report, err := Evaluate(params, data)
		if err != nil {
			return res, err
		}
		for _, p := range report.Predictions {
			log.Printf("sample=%d target=%g pred=%.6f", p.Index, p.Target, p.Output)
		}
		log.Printf("run=%s mean_loss=%.6f accuracy=%.4f", runID, report.MeanLoss, report.Accuracy)
	}

	if err := params.Save(cfg.Output); err != nil {
		return res, fmt.Errorf("save network: %w", err)
	}
	log.Printf("run=%s network saved path=%s values=%d", runID, cfg.Output, params.Shape().Count())
	return res, nil
}
