package provider

import (
	"math"
	"time"
)

// Point is one dated value of a series. A nil Value means no data.
type Point struct {
	Date  time.Time
	Value *float64
}

// Series is an ordered, oldest-first sequence of points for one symbol.
type Series []Point

// DropMissing returns the points that carry a value, skipping nil and NaN.
func (s Series) DropMissing() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Value == nil || math.IsNaN(*p.Value) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Values returns the point values; callers should DropMissing first.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if p.Value != nil {
			out = append(out, *p.Value)
		}
	}
	return out
}
