// SPDX-License-Identifier: MIT

package nll

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/kahan"
	"github.com/katalvlaran/binnll/metrics"
	"github.com/katalvlaran/binnll/model"
)

// Evaluator is the partitioned binned NLL of one model over one range.
//
// The bin table and the backends are fixed at construction. Evaluate may
// be called repeatedly after the caller changes parameter values.
type Evaluator struct {
	name        string
	pdf         model.Pdf
	data        model.Dataset
	obs         *model.RealVar
	observables []*model.RealVar
	table       *binning.Table
	fullBins    int
	kind        integrate.Kind
	extended    bool
	sumW2       bool
	strict      bool
	workers     int
	split       Split
	pool        chan integrate.Backend
	logger      *slog.Logger
	metrics     *metrics.Recorder

	mu       sync.Mutex // guards the fields below
	offsetOn bool
	captured bool
	offset   float64
	offCarry float64
	constOpt int
}

var _ Term = (*Evaluator)(nil)

// NewEvaluator builds the NLL of p against data.
//
// Implementation:
//   - Stage 1: validate the options.
//   - Stage 2: derive the bin table from the binning of p's observable and
//     restrict it to the requested range.
//   - Stage 3: select a backend (analytical when every component of p
//     integrates in closed form, adaptive otherwise) and create one
//     backend per worker.
//   - Stage 4: resolve the extended mode.
//
// Errors:
//   - ErrConfiguration for conflicting ranges, an unknown range name, a
//     worker count below 1, an unknown split or a forced analytical
//     backend on a model without closed form.
//   - ErrStructural for a missing or degenerate binning, an observable
//     mismatch between p and data or a range containing no complete bin.
func NewEvaluator(p model.Pdf, data model.Dataset, opts ...Option) (*Evaluator, error) {
	return newEvaluator(p, data, gatherOptions(opts))
}

func newEvaluator(p model.Pdf, data model.Dataset, o Options) (*Evaluator, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if strings.Contains(o.RangeName, ",") {
		return nil, fmt.Errorf("range %q: multiple ranges need Create: %w", o.RangeName, ErrConfiguration)
	}
	if p == nil || data == nil {
		return nil, fmt.Errorf("model and dataset are required: %w", ErrConfiguration)
	}

	// Stage 2: bin table
	obs := p.Observable()
	if obs == nil {
		return nil, fmt.Errorf("%s: model has no observable: %w", p.Name(), ErrStructural)
	}
	if data.Observable().Name() != obs.Name() {
		return nil, fmt.Errorf("model observable %s, dataset observable %s: %w",
			obs.Name(), data.Observable().Name(), ErrStructural)
	}
	bins, err := obs.Binning()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStructural, err)
	}
	table, err := binning.NewTable(bins)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", obs.Name(), ErrStructural, err)
	}
	if data.NumEntries() != table.NumBins() {
		return nil, fmt.Errorf("%d dataset entries for %d bins: %w", data.NumEntries(), table.NumBins(), ErrStructural)
	}
	fullBins := table.NumBins()
	switch {
	case o.RangeName != "":
		lo, hi, err := obs.Range(o.RangeName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		if table, err = table.Restrict(lo, hi); err != nil {
			return nil, fmt.Errorf("range %q: %w: %w", o.RangeName, ErrStructural, err)
		}
	case o.HasRange:
		if table, err = table.Restrict(o.RangeLo, o.RangeHi); err != nil {
			return nil, fmt.Errorf("range [%g, %g]: %w: %w", o.RangeLo, o.RangeHi, ErrStructural, err)
		}
	}

	// Stage 3: backends
	kind := integrate.Select(p, obs, o.RangeName, integrate.KindAdaptive)
	if o.Integrator != nil {
		kind = *o.Integrator
	}
	factory, err := integrate.NewFactory(p, obs, o.RangeName, kind, o.IntegratorOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	workers := min(o.Workers, table.NumBins())
	pool := make(chan integrate.Backend, workers)
	for range workers {
		b, err := factory()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		pool <- b
	}

	// Stage 4: extended mode
	extended := o.Extended == ExtendedOn
	if o.Extended == ExtendedAuto {
		extended = p.ExtendMode() != model.CanNotBeExtended
	}

	name := o.Name
	if name == "" {
		name = "nll_" + p.Name()
	}
	e := &Evaluator{
		name:        name,
		pdf:         p,
		data:        data,
		obs:         obs,
		observables: model.Observables(p, data),
		table:       table,
		fullBins:    fullBins,
		kind:        kind,
		extended:    extended,
		sumW2:       o.SumW2Error,
		strict:      o.Strict,
		workers:     workers,
		split:       o.Split,
		pool:        pool,
		logger:      o.Logger,
		metrics:     o.Metrics,
		offsetOn:    o.Offset,
	}
	e.logger.Debug("nll evaluator created",
		"evaluator", name,
		"backend", kind.String(),
		"range", o.RangeName,
		"bins", table.NumBins(),
		"firstBin", table.FirstBin(),
		"workers", workers,
		"split", o.Split.String(),
		"extended", extended,
	)

	return e, nil
}

// validate reports option values NewEvaluator cannot honour.
func (o Options) validate() error {
	switch {
	case o.Workers < 1:
		return fmt.Errorf("workers %d: %w", o.Workers, ErrConfiguration)
	case o.Split != SplitContiguous && o.Split != SplitInterleaved:
		return fmt.Errorf("split %d: %w", int(o.Split), ErrConfiguration)
	case o.Extended < ExtendedAuto || o.Extended > ExtendedOff:
		return fmt.Errorf("extended mode %d: %w", int(o.Extended), ErrConfiguration)
	case o.HasRange && o.RangeName != "":
		return fmt.Errorf("explicit range and range name %q: %w", o.RangeName, ErrConfiguration)
	case o.HasRange && !(o.RangeLo < o.RangeHi):
		return fmt.Errorf("range [%g, %g]: %w", o.RangeLo, o.RangeHi, ErrConfiguration)
	}

	return nil
}

// Name implements Term.
func (e *Evaluator) Name() string { return e.name }

// Table returns the bin table of the evaluated range.
func (e *Evaluator) Table() *binning.Table { return e.table }

// Kind returns the selected backend kind.
func (e *Evaluator) Kind() integrate.Kind { return e.kind }

// Extended reports whether the extended term is added.
func (e *Evaluator) Extended() bool { return e.extended }

// Workers returns the number of partitions per evaluation.
func (e *Evaluator) Workers() int { return e.workers }

// EvaluatePartition returns the compensated NLL of bins first, first+step,
// ... below last, in bin-table indices. The partition whose first bin is 0
// also carries the extended term. No offset is applied.
//
// Calls on disjoint partitions may run concurrently; each call borrows a
// backend from the evaluator's pool for its whole duration.
//
// Errors:
//   - ErrBadPartition if the partition lies outside the table or step < 1.
//   - ErrIntegrationDegraded under strict integration.
//   - ErrZeroSumWeights from the weighted extended term.
func (e *Evaluator) EvaluatePartition(first, last, step int) (Partition, error) {
	if err := e.table.CheckPartition(first, last, step); err != nil {
		return Partition{}, fmt.Errorf("%s: [%d, %d) step %d: %w", e.name, first, last, step, ErrBadPartition)
	}
	b := <-e.pool
	defer func() { e.pool <- b }()

	return e.evaluatePartition(b, first, last, step)
}

// evaluatePartition runs the bin loop with backend b.
//
// Implementation:
//   - Stage 1: refresh the dataset cache of the partition.
//   - Stage 2: per bin, integrate the density and add the masked term.
//   - Stage 3: the owner of bin 0 adds the extended term to the same
//     accumulator.
func (e *Evaluator) evaluatePartition(b integrate.Backend, first, last, step int) (Partition, error) {
	start := time.Now()
	off := e.table.FirstBin()
	e.data.RefreshCache(off+first, off+last)

	var (
		acc  kahan.Sum
		part Partition
	)
	for i := first; i < last; i += step {
		n := e.data.Weight(off + i)
		if n <= WeightFloor {
			continue
		}
		lo, hi := e.table.Bounds(i)
		mu := b.Integrate(lo, hi)
		if st := b.Status(); !st.Converged {
			part.Degraded++
			e.logger.Debug("integration degraded",
				"evaluator", e.name, "bin", off+i, "backend", b.Kind().String(), "absErr", st.AbsErr)
			if e.strict {
				return Partition{}, fmt.Errorf("%s: bin %d: %w: %w", e.name, off+i, ErrIntegrationDegraded, st.Err())
			}
		}
		acc.Add(MaskedTerm(n, mu))
	}

	if e.extended && first == 0 {
		term, err := e.extendedTerm(b)
		if err != nil {
			return Partition{}, err
		}
		acc.Add(term)
	}

	e.metrics.Degraded(b.Kind().String(), part.Degraded)
	e.metrics.Partition(e.name, time.Since(start))
	part.Sum, part.Carry = acc.Result(), acc.Carry()

	return part, nil
}

// extendedTerm returns the Poisson penalty on the event count of the
// evaluated range. Only the bins of the table are counted; on a restricted
// table the expectation is scaled by the fraction of the density inside
// [table.Low, table.High], integrated with b.
// With the sum-of-weights-squared correction and weighted data the
// expectation and the observation are both scaled by ΣW²/ΣW.
func (e *Evaluator) extendedTerm(b integrate.Backend) (float64, error) {
	off, n := e.table.FirstBin(), e.table.NumBins()
	var w, w2 kahan.Sum
	for i := off; i < off+n; i++ {
		w.Add(e.data.Weight(i))
		w2.Add(e.data.WeightSquared(i))
	}
	sumW, sumW2 := w.Result(), w2.Result()

	full := off == 0 && n == e.fullBins
	if full && (!e.sumW2 || !e.data.IsWeighted()) {
		return e.pdf.ExtendedTerm(sumW, e.observables), nil
	}

	expected := e.pdf.ExpectedEvents(e.observables)
	if !full && expected > 0 {
		frac, err := e.rangeFraction(b)
		if err != nil {
			return 0, err
		}
		expected *= frac
	}
	if !e.sumW2 || !e.data.IsWeighted() {
		return model.PoissonTerm(expected, sumW), nil
	}
	if sumW == 0 {
		return 0, fmt.Errorf("%s: %w", e.name, ErrZeroSumWeights)
	}
	if expected <= 0 {
		return 0, nil
	}

	return expected*sumW2/sumW - sumW2*math.Log(expected), nil
}

// rangeFraction returns ∫ over the table / ∫ over the observable limits.
func (e *Evaluator) rangeFraction(b integrate.Backend) (float64, error) {
	in := b.Integrate(e.table.Low(), e.table.High())
	if err := e.checkStatus(b, "range"); err != nil {
		return 0, err
	}
	total := b.Integrate(e.obs.Min(), e.obs.Max())
	if err := e.checkStatus(b, "limits"); err != nil {
		return 0, err
	}
	if total <= 0 {
		return 0, nil
	}

	return in / total, nil
}

// checkStatus logs a degraded integral and escalates it under strict
// integration.
func (e *Evaluator) checkStatus(b integrate.Backend, what string) error {
	st := b.Status()
	if st.Converged {
		return nil
	}
	e.logger.Debug("integration degraded",
		"evaluator", e.name, "integral", what, "backend", b.Kind().String(), "absErr", st.AbsErr)
	if e.strict {
		return fmt.Errorf("%s: %s integral: %w: %w", e.name, what, ErrIntegrationDegraded, st.Err())
	}

	return nil
}

// partition returns the bins of worker k.
func (e *Evaluator) partition(k int) (first, last, step int) {
	n := e.table.NumBins()
	if e.split == SplitInterleaved {
		return k, n, e.workers
	}

	return k * n / e.workers, (k + 1) * n / e.workers, 1
}

// Evaluate implements Term.
//
// Implementation:
//   - Stage 1: evaluate the worker partitions concurrently, each with a
//     private backend and accumulator.
//   - Stage 2: merge the partition pairs in worker order.
//   - Stage 3: apply the offset.
func (e *Evaluator) Evaluate() (float64, error) {
	parts := make([]Partition, e.workers)
	var g errgroup.Group
	for k := range e.workers {
		first, last, step := e.partition(k)
		g.Go(func() error {
			b := <-e.pool
			defer func() { e.pool <- b }()

			p, err := e.evaluatePartition(b, first, last, step)
			parts[k] = p

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var acc kahan.Sum
	for _, p := range parts {
		acc.AddCompensated(p.Sum, p.Carry)
	}
	e.metrics.Evaluation(e.name)

	return e.applyOffset(acc), nil
}

// applyOffset captures the first nonzero result and subtracts the
// captured pair from acc.
func (e *Evaluator) applyOffset(acc kahan.Sum) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.offsetOn {
		return acc.Result()
	}
	if !e.captured {
		if acc.Result() == 0 {
			return 0
		}
		e.offset, e.offCarry, e.captured = acc.Result(), acc.Carry(), true
		e.metrics.OffsetCaptured(e.name)
		e.logger.Debug("nll offset captured", "evaluator", e.name, "offset", e.offset)
	}
	acc.AddCompensated(-e.offset, -e.offCarry)

	return acc.Result()
}

// EnableOffsetting implements Term. Any captured offset is cleared; the
// next nonzero evaluation captures a new one.
func (e *Evaluator) EnableOffsetting(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.offsetOn = on
	e.captured = false
	e.offset, e.offCarry = 0, 0
}

// Offset returns the captured offset pair.
func (e *Evaluator) Offset() (value, carry float64, captured bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.offset, e.offCarry, e.captured
}

// SetConstOptimization implements Term. The level is recorded and logged;
// the evaluator keeps no expression cache to tune.
func (e *Evaluator) SetConstOptimization(level int) {
	e.mu.Lock()
	e.constOpt = level
	e.mu.Unlock()

	e.logger.Debug("constant optimization", "evaluator", e.name, "level", level)
}

// ConstOptimization returns the last level set.
func (e *Evaluator) ConstOptimization() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.constOpt
}
