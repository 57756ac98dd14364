// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/binnll/constraint"
	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/metrics"
	"github.com/katalvlaran/binnll/model"
	"github.com/katalvlaran/binnll/nll"
)

// app holds the flags shared by all commands.
type app struct {
	file    string
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "binnll",
		Short:        "Evaluate binned negative log-likelihoods",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
				Level:      level,
				TimeFormat: "15:04:05",
			}))
		},
	}
	root.PersistentFlags().StringVarP(&a.file, "file", "f", "fit.yaml", "fit description")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.evalCmd(), a.scanCmd(), a.selectCmd())

	return root
}

// build loads the fit and creates its objective.
func (a *app) build(reg prometheus.Registerer) (*fit, nll.Term, error) {
	f, err := loadFit(a.file)
	if err != nil {
		return nil, nil, err
	}
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, nil, err
	}
	term, err := nll.Create(f.pdf, f.data, f.config, nll.WithLogger(a.logger), nll.WithMetrics(rec))
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("objective built",
		"model", f.pdf.Name(),
		"bins", f.data.NumEntries(),
		"sumWeights", f.data.SumWeights(),
		"workers", f.config.NumWorkers,
	)

	return f, term, nil
}

func (a *app) evalCmd() *cobra.Command {
	var showMetrics bool
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the NLL at the parameter values of the fit file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			_, term, err := a.build(reg)
			if err != nil {
				return err
			}
			v, err := term.Evaluate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nll = %.10g\n", v)
			printBreakdown(out, term, "  ")
			if showMetrics {
				return printMetrics(out, reg)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print evaluation metrics")

	return cmd
}

// printBreakdown prints the value of every summand of term.
func printBreakdown(w io.Writer, term nll.Term, indent string) {
	s, ok := term.(*nll.Sum)
	if !ok {
		return
	}
	for _, t := range s.Terms() {
		v, err := t.Evaluate()
		if err != nil {
			fmt.Fprintf(w, "%s%s: %v\n", indent, t.Name(), err)
			continue
		}
		fmt.Fprintf(w, "%s%s = %.10g\n", indent, t.Name(), v)
		if cs, ok := t.(*constraint.Sum); ok {
			for _, k := range cs.Terms() {
				fmt.Fprintf(w, "%s  %s\n", indent, k.Name())
			}
		}
		printBreakdown(w, t, indent+"  ")
	}
}

// printMetrics prints counter and histogram sample counts of reg.
func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			value := m.GetCounter().GetValue()
			if h := m.GetHistogram(); h != nil {
				value = float64(h.GetSampleCount())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}

	return nil
}

func (a *app) scanCmd() *cobra.Command {
	var (
		param    string
		from, to float64
		steps    int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the NLL while stepping one parameter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 2 {
				return fmt.Errorf("--steps %d: need at least 2: %w", steps, errFitFile)
			}
			f, term, err := a.build(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			v, err := f.lookup(param)
			if err != nil {
				return err
			}
			start := v.Value()
			defer v.SetValue(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s nll\n", param)
			for i := 0; i < steps; i++ {
				p := from + (to-from)*float64(i)/float64(steps-1)
				v.SetValue(p)
				val, err := term.Evaluate()
				if err != nil {
					return fmt.Errorf("%s=%g: %w", param, p, err)
				}
				fmt.Fprintf(out, "%.6g %.10g\n", p, val)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&param, "param", "", "parameter to scan")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 1, "last value")
	cmd.Flags().IntVar(&steps, "steps", 11, "number of points")
	_ = cmd.MarkFlagRequired("param")

	return cmd
}

func (a *app) selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "Print the integration backend chosen per range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := loadFit(a.file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, seg := range strings.Split(f.config.RangeName, ",") {
				seg = strings.TrimSpace(seg)
				kind := integrate.Select(f.pdf, f.x, seg, integrate.KindAdaptive)
				label := seg
				if label == "" {
					label = "(full)"
				}
				fmt.Fprintf(out, "range %s: %s\n", label, kind)
				model.Walk(f.pdf, func(p model.Pdf) bool {
					if _, composite := p.(model.Composite); !composite {
						code := p.AnalyticalIntegral([]*model.RealVar{f.x}, seg)
						fmt.Fprintf(out, "  %s: code %d\n", p.Name(), code)
					}

					return true
				})
			}

			return nil
		},
	}
}
