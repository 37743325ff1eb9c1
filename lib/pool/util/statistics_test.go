package util

import (
	"math"
	"testing"
)

func TestNewStats(t *testing.T) {
	stats := NewStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if stats.Mean != 5 {
		t.Errorf("Expected mean 5, got %v", stats.Mean)
	}
	if stats.Min != 2 || stats.Max != 9 {
		t.Errorf("Expected min 2 and max 9, got %v and %v", stats.Min, stats.Max)
	}
	if math.Abs(stats.StdDeviation-2) > 1e-9 {
		t.Errorf("Expected standard deviation 2, got %v", stats.StdDeviation)
	}
}

func TestNewStatsEmpty(t *testing.T) {
	stats := NewStats(nil)
	if stats != (Stats{}) {
		t.Errorf("Expected zero stats for empty input, got %+v", stats)
	}
}

func TestNewDistributionStats(t *testing.T) {
	// perfectly balanced partitions score 1.0
	balanced := NewDistributionStats([]float64{100, 100, 100, 100})
	if math.Abs(balanced.DistributionQuality-1.0) > 1e-9 {
		t.Errorf("Expected quality 1.0 for equal sizes, got %v", balanced.DistributionQuality)
	}

	// a badly skewed distribution scores lower
	skewed := NewDistributionStats([]float64{1000, 1, 1, 1})
	if skewed.DistributionQuality >= balanced.DistributionQuality {
		t.Errorf("Expected skewed quality below balanced, got %v >= %v",
			skewed.DistributionQuality, balanced.DistributionQuality)
	}
}

func TestGenerateSeed(t *testing.T) {
	// not a randomness test, just that consecutive seeds differ
	if GenerateSeed() == GenerateSeed() {
		t.Error("Expected consecutive seeds to differ")
	}
}
