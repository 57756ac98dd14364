package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/binnll/model"
	"github.com/katalvlaran/binnll/nll"
)

// TestLoadFit_Signal builds the nested signal model.
func TestLoadFit_Signal(t *testing.T) {
	f, err := loadFit("testdata/signal.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mass", f.x.Name())
	assert.Equal(t, 20, f.data.NumEntries())
	assert.Equal(t, model.CanBeExtended, f.pdf.ExtendMode())
	assert.True(t, f.params["mean_obs"].HasAttribute("global"))
	assert.Equal(t, 3, f.config.NumWorkers)

	names := make([]string, 0)
	for _, p := range model.Components(f.pdf) {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"model", "sum", "sig", "bkg"}, names)
}

// TestParseFit_Defaults uses the default NLL configuration.
func TestParseFit_Defaults(t *testing.T) {
	f, err := parseFit([]byte(`
observable: {name: x, min: 0, max: 1, edges: [0, 0.25, 1]}
model: {name: u, type: uniform}
data: {counts: [1, 3], weightsSquared: [2, 3]}
`))
	require.NoError(t, err)
	assert.Equal(t, nll.DefaultConfig(), f.config)
	assert.True(t, f.data.IsWeighted())
	assert.Equal(t, 2.0, f.data.WeightSquared(0))
}

// TestParseFit_Errors rejects inconsistent descriptions.
func TestParseFit_Errors(t *testing.T) {
	docs := map[string]string{
		"yaml":              "observable: [",
		"no observable":     "model: {name: u, type: uniform}",
		"unknown type":      "observable: {name: x, min: 0, max: 1, bins: 2}\nmodel: {name: u, type: spline}\ndata: {counts: [1, 1]}",
		"unknown parameter": "observable: {name: x, min: 0, max: 1, bins: 2}\nmodel: {name: g, type: gaussian, params: [m, s]}\ndata: {counts: [1, 1]}",
		"arity":             "observable: {name: x, min: 0, max: 1, bins: 2}\nparameters: [{name: c, value: 1, min: 0, max: 2}]\nmodel: {name: g, type: gaussian, params: [c]}\ndata: {counts: [1, 1]}",
		"wrapper":           "observable: {name: x, min: 0, max: 1, bins: 2}\nmodel: {name: e, type: constrained}\ndata: {counts: [1, 1]}",
		"bad range":         "observable: {name: x, min: 0, max: 1, bins: 2, ranges: {a: [1]}}\nmodel: {name: u, type: uniform}\ndata: {counts: [1, 1]}",
		"duplicate":         "observable: {name: x, min: 0, max: 1, bins: 2}\nparameters: [{name: x, value: 1}]\nmodel: {name: u, type: uniform}\ndata: {counts: [1, 1]}",
		"w2 length":         "observable: {name: x, min: 0, max: 1, bins: 2}\nmodel: {name: u, type: uniform}\ndata: {counts: [1, 1], weightsSquared: [1]}",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := parseFit([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := parseFit([]byte("observable: {name: x, min: 0, max: 1, bins: 2}\nmodel: {name: u, type: uniform}\ndata: {counts: [1, 1]}\nnll: {numWorkers: 0}"))
	assert.ErrorIs(t, err, nll.ErrConfiguration)
}
