package integrate_test

import (
	"testing"

	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/model"
)

// benchmarkBackend integrates a Gaussian over 100 bins per iteration.
func benchmarkBackend(b *testing.B, kind integrate.Kind) {
	x := model.NewRealVar("x", 0, 0, 1)
	mean := model.NewRealVar("mean", 0.5, 0, 1)
	sigma := model.NewRealVar("sigma", 0.1, 0.01, 1)
	g := model.NewGaussian("g", x, mean, sigma)
	f, err := integrate.NewFactory(g, x, "", kind)
	if err != nil {
		b.Fatalf("factory: %v", err)
	}
	backend, err := f()
	if err != nil {
		b.Fatalf("backend: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for k := 0; k < 100; k++ {
			_ = backend.Integrate(float64(k)/100, float64(k+1)/100)
		}
	}
}

// BenchmarkAdaptive measures the adaptive Gauss–Legendre backend.
func BenchmarkAdaptive(b *testing.B) { benchmarkBackend(b, integrate.KindAdaptive) }

// BenchmarkRomberg measures the Romberg backend.
func BenchmarkRomberg(b *testing.B) { benchmarkBackend(b, integrate.KindRomberg) }

// BenchmarkAnalytical measures the closed-form backend.
func BenchmarkAnalytical(b *testing.B) { benchmarkBackend(b, integrate.KindAnalytical) }
