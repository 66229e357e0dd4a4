package trainer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perceptron/internal/dataset"
	"perceptron/internal/model"
)

var tinyShape = model.Shape{Input: 2, Hidden: 2, Output: 1}

func twoSamples() dataset.Dataset {
	return dataset.Dataset{
		{Path: "pos", Input: []float64{1, 0}, Target: []float64{1}},
		{Path: "neg", Input: []float64{0, 1}, Target: []float64{0}},
	}
}

func TestTrainReducesLossFromZeroParams(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)
	data := twoSamples()

	before, err := Evaluate(params, data)
	require.NoError(t, err)
	assert.Equal(t, 0.25, before.MeanLoss)

	res, err := Train(context.Background(), params, data, Options{Epochs: 500, LearningRate: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 500, res.Epochs)
	assert.Len(t, res.History, 500)

	after, err := Evaluate(params, data)
	require.NoError(t, err)
	assert.Less(t, after.MeanLoss, 0.1)
	assert.Equal(t, 1.0, after.Accuracy)
}

func TestTrainZeroParamsReferenceRate(t *testing.T) {
	// From all-zero parameters both hidden units start identical and the
	// output bias oscillates between the two targets, so at the reference
	// rate the loss stays at chance for 500 epochs.
	params, err := model.New(tinyShape)
	require.NoError(t, err)
	data := twoSamples()

	_, err = Train(context.Background(), params, data, Options{Epochs: 500, LearningRate: DefaultLearningRate})
	require.NoError(t, err)

	after, err := Evaluate(params, data)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, after.MeanLoss, 1e-4)
}

func TestTrainReducesLossFromGlorotInit(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		params, err := model.New(tinyShape)
		require.NoError(t, err)
		params.Initialize(rand.New(rand.NewSource(seed)))
		data := twoSamples()

		before, err := Evaluate(params, data)
		require.NoError(t, err)

		_, err = Train(context.Background(), params, data, Options{Epochs: DefaultEpochs, LearningRate: DefaultLearningRate})
		require.NoError(t, err)

		after, err := Evaluate(params, data)
		require.NoError(t, err)
		assert.Less(t, after.MeanLoss, before.MeanLoss, "seed %d", seed)
	}
}

func TestTrainEmptyDataset(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)
	before := params.Clone()

	res, err := Train(context.Background(), params, nil, Options{Epochs: 3, LearningRate: 0.01})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, res.History)
	assert.True(t, params.Equal(before))
}

func TestTrainInvalidOptions(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)

	_, err = Train(context.Background(), params, twoSamples(), Options{Epochs: 0, LearningRate: 0.01})
	require.Error(t, err)
	_, err = Train(context.Background(), params, twoSamples(), Options{Epochs: 1, LearningRate: 0})
	require.Error(t, err)
}

func TestTrainShapeMismatch(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)

	data := dataset.Dataset{{Path: "bad", Input: []float64{1, 0, 1}, Target: []float64{1}}}
	_, err = Train(context.Background(), params, data, Options{Epochs: 1, LearningRate: 0.01})
	require.ErrorIs(t, err, model.ErrShape)
}

func TestTrainStopsBetweenEpochsOnCancel(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Train(ctx, params, twoSamples(), Options{Epochs: 10, LearningRate: 0.01})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Epochs)
}

func TestTrainHistoryIsPreUpdateLoss(t *testing.T) {
	params, err := model.New(tinyShape)
	require.NoError(t, err)

	res, err := Train(context.Background(), params, twoSamples(), Options{Epochs: 1, LearningRate: 0.01, RunID: "test"})
	require.NoError(t, err)
	assert.Equal(t, "test", res.RunID)
	// The first sample sees 0.5 against target 1; the second sample sees
	// a slightly raised output against target 0.
	assert.InDelta(t, 0.25, res.History[0], 1e-3)
	assert.Equal(t, res.History[0], res.FinalLoss)
}

func TestRunWritesNetwork(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "class_a", "a1.png"), 230)
	writePNG(t, filepath.Join(root, "class_a", "a2.png"), 210)
	writePNG(t, filepath.Join(root, "class_b", "b1.png"), 20)
	out := filepath.Join(t.TempDir(), model.DefaultFilename)

	res, err := Run(context.Background(), RunConfig{
		DatasetRoot:  root,
		Output:       out,
		Epochs:       3,
		LearningRate: DefaultLearningRate,
		LogEvery:     1,
		Seed:         1,
		Report:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Epochs)
	assert.NotEmpty(t, res.RunID)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultShape.Count(), strings.Count(string(raw), "\n"))

	params, err := model.New(model.DefaultShape)
	require.NoError(t, err)
	n, err := params.Load(out)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultShape.Count(), n)
}

func TestRunRequiresDatasetRoot(t *testing.T) {
	_, err := Run(context.Background(), RunConfig{Epochs: 1, LearningRate: 0.01})
	require.Error(t, err)
}

func writePNG(t *testing.T, path string, level uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 48, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}
