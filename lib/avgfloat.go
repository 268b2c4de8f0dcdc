package lib

import "math"

// AverageFloat64 compute statistical mean, variance and standard
// deviation over a stream of float64 samples.
type AverageFloat64 struct {
	n      int64
	minval float64
	maxval float64
	sum    float64
	sumsq  float64
	init   bool
}

// Add a sample.
func (av *AverageFloat64) Add(sample float64) {
	av.n++
	av.sum += sample
	av.sumsq += sample * sample
	if av.init == false || sample < av.minval {
		av.minval = sample
		av.init = true
	}
	if av.maxval < sample {
		av.maxval = sample
	}
}

// Min return the smallest sample so far.
func (av *AverageFloat64) Min() float64 {
	return av.minval
}

// Max return the largest sample so far.
func (av *AverageFloat64) Max() float64 {
	return av.maxval
}

// Samples return the number of samples so far.
func (av *AverageFloat64) Samples() int64 {
	return av.n
}

// Sum return the sum of all samples so far.
func (av *AverageFloat64) Sum() float64 {
	return av.sum
}

// Mean return the running average, 0 when no samples were added.
func (av *AverageFloat64) Mean() float64 {
	if av.n == 0 {
		return 0
	}
	return av.sum / float64(av.n)
}

// Variance return the running variance.
func (av *AverageFloat64) Variance() float64 {
	if av.n == 0 {
		return 0
	}
	n_f, mean_f := float64(av.n), av.Mean()
	return (av.sumsq / n_f) - (mean_f * mean_f)
}

// SD return the running standard deviation.
func (av *AverageFloat64) SD() float64 {
	if av.n == 0 {
		return 0
	}
	return math.Sqrt(av.Variance())
}

// Clone the accumulator.
func (av *AverageFloat64) Clone() *AverageFloat64 {
	newav := (*av)
	return &newav
}

// Stats return the accumulator state as a set of key,value pairs.
func (av *AverageFloat64) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"samples":     av.Samples(),
		"min":         av.Min(),
		"max":         av.Max(),
		"mean":        av.Mean(),
		"variance":    av.Variance(),
		"stddeviance": av.SD(),
	}
	return stats
}
