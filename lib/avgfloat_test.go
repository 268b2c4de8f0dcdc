package lib

import "math"
import "testing"

func TestAverageFloat(t *testing.T) {
	avg := &AverageFloat64{}

	if mean := avg.Mean(); mean != 0 {
		t.Errorf("expected 0, got %v", mean)
	} else if variance := avg.Variance(); variance != 0 {
		t.Errorf("expected 0, got %v", variance)
	} else if sd := avg.SD(); sd != 0 {
		t.Errorf("expected 0, got %v", sd)
	}

	// start populating.
	for i := 1; i <= 100; i++ {
		avg.Add(float64(i))
	}
	// validate
	if x, y := float64(1), avg.Min(); x != y {
		t.Errorf("Min() expected %v, got %v", x, y)
	} else if x, y := float64(100), avg.Max(); x != y {
		t.Errorf("Max() expected %v, got %v", x, y)
	} else if x, y := int64(100), avg.Samples(); x != y {
		t.Errorf("Samples() expected %v, got %v", x, y)
	} else if x, y := float64(100*101)/2, avg.Sum(); x != y {
		t.Errorf("Sum() expected %v, got %v", x, y)
	} else if x, y := avg.Sum()/float64(avg.Samples()), avg.Mean(); x != y {
		t.Errorf("Mean() expected %v, got %v", x, y)
	} else if x, y := 833.25, avg.Variance(); math.Abs(x-y) > 1e-9 {
		t.Errorf("Variance() expected %v, got %v", x, y)
	} else if x, y := math.Sqrt(833.25), avg.SD(); math.Abs(x-y) > 1e-9 {
		t.Errorf("SD() expected %v, got %v", x, y)
	}
	// stats
	stats := avg.Stats()
	if x, y := float64(1), stats["min"].(float64); x != y {
		t.Errorf("Min() expected %v, got %v", x, y)
	} else if x, y := float64(100), stats["max"].(float64); x != y {
		t.Errorf("Max() expected %v, got %v", x, y)
	} else if x, y := int64(100), stats["samples"].(int64); x != y {
		t.Errorf("Samples() expected %v, got %v", x, y)
	} else if x, y := avg.Mean(), stats["mean"].(float64); x != y {
		t.Errorf("Mean() expected %v, got %v", x, y)
	}

	// clone
	newavg := avg.Clone()
	if x, y := avg.Mean(), newavg.Mean(); x != y {
		t.Errorf("Clone() expected %v, got %v", x, y)
	} else if x, y := avg.Samples(), newavg.Samples(); x != y {
		t.Errorf("Clone() expected %v, got %v", x, y)
	}
	newavg.Add(1000)
	if x, y := avg.Samples()+1, newavg.Samples(); x != y {
		t.Errorf("expected %v, got %v", x, y)
	}
}
