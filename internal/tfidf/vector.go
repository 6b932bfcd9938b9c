package tfidf

import "math"

// Entry is one non-zero component of a sparse vector
type Entry struct {
	Term   int // Vocabulary term ID
	Weight float64
}

// Vector is a sparse vector over the vocabulary with entries sorted by term ID.
// The empty vector is the zero vector.
type Vector []Entry

// Len returns the number of non-zero components
func (v Vector) Len() int {
	return len(v)
}

// IsZero returns true if the vector has no non-zero components
func (v Vector) IsZero() bool {
	return len(v) == 0
}

// Weight returns the component for a term ID, zero if absent
func (v Vector) Weight(term int) float64 {
	lo, hi := 0, len(v)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if v[mid].Term < term {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v) && v[lo].Term == term {
		return v[lo].Weight
	}
	return 0
}

// Norm returns the Euclidean length of the vector
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two vectors by merging their sorted entries
func (v Vector) Dot(other Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].Term == other[j].Term:
			sum += v[i].Weight * other[j].Weight
			i++
			j++
		case v[i].Term < other[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalize scales the vector to unit length in place.
// A zero-norm vector is left as is.
func (v Vector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v {
		v[i].Weight /= norm
	}
}
