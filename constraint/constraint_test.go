package constraint_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/constraint"
	"github.com/katalvlaran/binnll/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// world is a two-component model whose components carry overlapping
// constraint terms.
type world struct {
	x, c, d, cObs, dObs *model.RealVar
	top                 model.Pdf
	gc, gd              *model.GaussianConstraint
}

func newWorld(t *testing.T) world {
	t.Helper()
	x := model.NewRealVar("x", 0, 0, 1)
	b, err := binning.NewUniform(0, 1, 4)
	require.NoError(t, err)
	x.SetBinning(b)

	w := world{
		x:    x,
		c:    model.NewRealVar("c", 1, -5, 5),
		d:    model.NewRealVar("d", 0.5, 0, 1),
		cObs: model.NewRealVar("c_obs", 1, -5, 5),
		dObs: model.NewRealVar("d_obs", 0.5, 0, 1),
	}
	w.cObs.SetAttribute("global")
	w.gc, err = model.NewGaussianConstraint("gc", w.c, w.cObs, 0.5)
	require.NoError(t, err)
	w.gd, err = model.NewGaussianConstraint("gd", w.d, w.dObs, 0.1)
	require.NoError(t, err)

	expo := model.NewConstrained("expo_c", model.NewExponential("expo", x, w.c), w.gc)
	flat := model.NewConstrained("flat_c", model.NewUniform("flat", x), w.gc, w.gd)
	sum, err := model.NewAdditive("sum", []model.Pdf{expo, flat}, []*model.RealVar{w.d})
	require.NoError(t, err)
	w.top = sum

	return w
}

// TestCollect_DeduplicatesByName unions terms from all components once.
func TestCollect_DeduplicatesByName(t *testing.T) {
	w := newWorld(t)
	terms := constraint.Collect(w.top, []*model.RealVar{w.x}, []*model.RealVar{w.c, w.d}, false)
	require.Len(t, terms, 2)
	assert.Equal(t, "gc", terms[0].Name())
	assert.Equal(t, "gd", terms[1].Name())
}

// TestCollect_StripDisconnected omits terms sharing nothing with the
// constrained set.
func TestCollect_StripDisconnected(t *testing.T) {
	w := newWorld(t)
	terms := constraint.Collect(w.top, []*model.RealVar{w.x}, []*model.RealVar{w.c}, true)
	require.Len(t, terms, 1)
	assert.Equal(t, "gc", terms[0].Name())

	none := constraint.Collect(model.NewUniform("plain", w.x), []*model.RealVar{w.x}, nil, false)
	assert.Empty(t, none)
}

// TestMerge appends external terms without duplicates.
func TestMerge(t *testing.T) {
	w := newWorld(t)
	p := model.NewRealVar("p", 1, 0, 2)
	pObs := model.NewRealVar("p_obs", 1, 0, 2)
	ext, err := model.NewGaussianConstraint("ext", p, pObs, 1)
	require.NoError(t, err)

	merged := constraint.Merge([]model.Constraint{w.gc}, w.gc, ext)
	assert.Len(t, merged, 2)
}

// TestGlobalObservables covers discovery by tag and by name.
func TestGlobalObservables(t *testing.T) {
	w := newWorld(t)
	terms := []model.Constraint{w.gc, w.gd}

	assert.Equal(t, []string{"c_obs", "d_obs"}, model.Names(constraint.GlobalObservables(terms)))
	assert.Equal(t, []string{"c_obs"}, model.Names(constraint.DiscoverGlobalObservables(terms, "global")))

	got, err := constraint.ResolveGlobalObservables(terms, []string{"d_obs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d_obs"}, model.Names(got))

	_, err = constraint.ResolveGlobalObservables(terms, []string{"x"})
	assert.ErrorIs(t, err, constraint.ErrUnknownGlobalObservable)
}

// TestSum_SnapshotsGlobalObservables freezes global observables at
// construction while parameters stay live.
func TestSum_SnapshotsGlobalObservables(t *testing.T) {
	w := newWorld(t)
	sum := constraint.NewSum("constraints", []model.Constraint{w.gc}, []*model.RealVar{w.cObs})

	base, err := sum.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.5*math.Sqrt(2*math.Pi)), base, 1e-12)

	w.cObs.SetValue(3) // ignored: snapshotted
	again, err := sum.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, base, again)

	w.c.SetValue(2) // live parameter
	moved, err := sum.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, base+2, moved, 1e-12)

	assert.Equal(t, map[string]float64{"c_obs": 1}, sum.Snapshot())
	assert.Equal(t, "constraints", sum.Name())
	assert.Len(t, sum.Terms(), 1)
}
