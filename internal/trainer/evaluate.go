package trainer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"perceptron/internal/dataset"
	"perceptron/internal/model"
)

// Prediction is the network output for one sample.
type Prediction struct {
	Index  int
	Path   string
	Target float64
	Output float64
}

// Correct reports whether the output falls on the target's side of 0.5.
func (p Prediction) Correct() bool {
	return (p.Output >= 0.5) == (p.Target >= 0.5)
}

// Report is the result of running the network over a dataset without
// training.
type Report struct {
	Predictions []Prediction
	MeanLoss    float64
	Accuracy    float64
}

// Evaluate runs the forward pass over every sample. params is not modified.
func Evaluate(params *model.Params, data dataset.Dataset) (Report, error) {
	report := Report{Predictions: make([]Prediction, 0, len(data))}
	if len(data) == 0 {
		return report, nil
	}

	losses := make([]float64, len(data))
	correct := 0
	for i, s := range data {
		_, output, err := params.Forward(s.Input)
		if err != nil {
			return Report{}, fmt.Errorf("trainer: evaluate sample %d (%s): %w", i, s.Path, err)
		}
		if len(s.Target) != len(output) {
			return Report{}, fmt.Errorf("trainer: evaluate sample %d (%s): %w", i, s.Path, model.ErrShape)
		}
		losses[i] = model.MeanSquaredError(output, s.Target)

		p := Prediction{Index: i, Path: s.Path, Target: s.Target[0], Output: output[0]}
		if p.Correct() {
			correct++
		}
		report.Predictions = append(report.Predictions, p)
	}
	report.MeanLoss = floats.Sum(losses) / float64(len(data))
	report.Accuracy = float64(correct) / float64(len(data))
	return report, nil
}
