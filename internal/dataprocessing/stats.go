package dataprocessing

import (
	"math"
	"sort"
)

// accumulator collects the non-missing values of one numeric column
type accumulator struct {
	values []float64
	sum    float64
}

func (a *accumulator) add(v *float64) {
	if v == nil || math.IsNaN(*v) {
		return
	}
	a.values = append(a.values, *v)
	a.sum += *v
}

func (a *accumulator) addValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.values = append(a.values, v)
	a.sum += v
}

func (a *accumulator) count() int {
	return len(a.values)
}

// mean returns nil when no value was collected
func (a *accumulator) mean() *float64 {
	if len(a.values) == 0 {
		return nil
	}
	m := a.sum / float64(len(a.values))
	return &m
}

func (a *accumulator) median() *float64 {
	return quantile(a.values, 0.5)
}

// quantile uses linear interpolation between the closest ranks.
// The input slice is not modified.
func quantile(values []float64, q float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	v := sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
	return &v
}

// roundTo rounds half to even at the given number of decimals
func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*pow) / pow
}

func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r := roundTo(*v, decimals)
	return &r
}
