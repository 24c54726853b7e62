package trial

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the victory times of a batch of finished trials.
type Summary struct {
	Backend  string
	Trials   int
	Finished int

	Mean   float64
	StdDev float64
	Min    float64
	P10    float64
	Median float64
	P90    float64
	Max    float64

	MeanFirstElimination float64
}

// Summarize computes statistics over the finished trials in results.
func Summarize(results []Result) Summary {
	s := Summary{Trials: len(results)}
	if len(results) > 0 {
		s.Backend = results[0].Backend
	}
	victory := VictoryTimes(results)
	s.Finished = len(victory)
	if len(victory) == 0 {
		return s
	}

	first := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Finished {
			first = append(first, float64(r.FirstElimination))
		}
	}

	s.Mean = stat.Mean(victory, nil)
	s.StdDev = math.NaN()
	if len(victory) > 1 {
		s.StdDev = stat.StdDev(victory, nil)
	}
	s.Min = victory[0]
	s.Max = victory[len(victory)-1]
	s.P10 = stat.Quantile(0.1, stat.Empirical, victory, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, victory, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, victory, nil)
	s.MeanFirstElimination = stat.Mean(first, nil)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%-8s finished=%d/%d mean=%.1f sd=%.1f min=%.0f p10=%.0f median=%.0f p90=%.0f max=%.0f firstElim=%.1f",
		s.Backend, s.Finished, s.Trials, s.Mean, s.StdDev, s.Min, s.P10, s.Median, s.P90, s.Max, s.MeanFirstElimination)
}

// VictoryTimes returns the sorted victory iterations of the finished trials.
func VictoryTimes(results []Result) []float64 {
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Finished {
			out = append(out, float64(r.Victory))
		}
	}
	slices.Sort(out)
	return out
}

// Compare returns the two-sample Kolmogorov-Smirnov distance between the
// victory time distributions of a and b: 0 for identical empirical
// distributions, 1 for disjoint ones. It is NaN if either side has no
// finished trial.
func Compare(a, b []Result) float64 {
	x, y := VictoryTimes(a), VictoryTimes(b)
	if len(x) == 0 || len(y) == 0 {
		return math.NaN()
	}
	return stat.KolmogorovSmirnov(x, nil, y, nil)
}

// CriticalKS is the KS distance above which two samples of sizes n and m are
// judged to come from different distributions at significance alpha.
func CriticalKS(alpha float64, n, m int) float64 {
	c := math.Sqrt(-math.Log(alpha/2) / 2)
	return c * math.Sqrt(float64(n+m)/float64(n*m))
}
