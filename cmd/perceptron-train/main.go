package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"perceptron/internal/config"
	"perceptron/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	lr := flag.Float64("lr", 0, "Learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed for initialization (0 seeds from the clock)")
	logEvery := flag.Int("log-every", 0, "Log every N epochs")
	out := flag.String("out", "", "Output parameter file")
	report := flag.Bool("report", true, "Log a prediction for every training sample after training")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <dataset_path>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("working directory: %v", err)
	}
	if err := cfg.ApplyEnv(wd); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		DatasetRoot:  flag.Arg(0),
		Output:       *out,
		Epochs:       *epochs,
		LearningRate: *lr,
		LogEvery:     *logEvery,
		Seed:         *seed,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := trainer.Run(ctx, cfg.RunConfig(*report)); err != nil {
		log.Fatalf("training failed: %v", err)
	}
}
