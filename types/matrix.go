package types

import (
	"math"

	"cupl/diag"
)

// Det is recognized but has no implementation
func Det(v Value) (Value, error) {
	return Value{}, diag.Fatalf("DET is not yet implemented")
}

// Inv is recognized but has no implementation
func Inv(v Value) (Value, error) {
	return Value{}, diag.Fatalf("INV is not yet implemented")
}

// Dot is the inner product of two congruent vectors
func Dot(left, right Value) (Value, error) {
	if left.Rank != RankVector || right.Rank != RankVector {
		return Value{}, diag.Fatalf("DOT is only defined for vectors")
	}
	if !left.Congruent(right) {
		return Value{}, diag.Fatalf("DOT failed, operands of different sizes")
	}
	sum := 0.0
	for n := range left.Elements {
		sum += left.Elements[n] * right.Elements[n]
	}
	return MakeScalar(sum), nil
}

// Trc sums the diagonal of a square matrix
func Trc(v Value) (Value, error) {
	if v.Rank != RankMatrix || v.Width != v.Depth {
		return Value{}, diag.Fatalf("TRC is only defined for square matrices")
	}
	sum := 0.0
	for i := 0; i < v.Depth; i++ {
		sum += v.Elements[i*v.Width+i]
	}
	return MakeScalar(sum), nil
}

// Trn transposes a matrix: width and depth swap. Scalars and vectors
// come back as copies.
func Trn(v Value) (Value, error) {
	if v.Rank != RankMatrix {
		return Copy(v), nil
	}
	result := allocated(Value{Rank: v.Rank, Width: v.Depth, Depth: v.Width, Elements: make([]float64, v.Len())})
	for i := 0; i < v.Depth; i++ {
		for j := 0; j < v.Width; j++ {
			result.Elements[j*result.Width+i] = v.Elements[i*v.Width+j]
		}
	}
	return result, nil
}

// PosMax returns the 1-based row-major position of the largest element
func PosMax(v Value) (Value, error) {
	return position("POSMAX", v, func(a, b float64) bool { return a > b })
}

// PosMin returns the 1-based row-major position of the smallest element
func PosMin(v Value) (Value, error) {
	return position("POSMIN", v, func(a, b float64) bool { return a < b })
}

func position(name string, v Value, better func(a, b float64) bool) (Value, error) {
	if v.IsScalar() {
		return Value{}, diag.Fatalf("%s is not defined for scalars", name)
	}
	best := 0
	for n := 1; n < len(v.Elements); n++ {
		if better(v.Elements[n], v.Elements[best]) {
			best = n
		}
	}
	return MakeScalar(float64(best + 1)), nil
}

// Sgm sums the absolute values of all elements
func Sgm(v Value) (Value, error) {
	sum := 0.0
	for _, e := range v.Elements {
		sum += math.Abs(e)
	}
	return MakeScalar(sum), nil
}
