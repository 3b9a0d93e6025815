package types

import (
	"math"
	"math/rand"

	"cupl/diag"
)

// Add sums two congruent values element by element
func Add(left, right Value) (Value, error) {
	if !left.Congruent(right) {
		return Value{}, diag.Fatalf("addition failed, operands of different sizes")
	}
	result := shaped(left)
	for n := range result.Elements {
		result.Elements[n] = left.Elements[n] + right.Elements[n]
	}
	return result, nil
}

// Subtract takes the element-by-element difference of two congruent values
func Subtract(left, right Value) (Value, error) {
	if !left.Congruent(right) {
		return Value{}, diag.Fatalf("subtract failed, operands of different sizes")
	}
	result := shaped(left)
	for n := range result.Elements {
		result.Elements[n] = left.Elements[n] - right.Elements[n]
	}
	return result, nil
}

// Multiply handles scalar products and conformable matrix products
func Multiply(left, right Value) (Value, error) {
	switch {
	case left.IsScalar() && right.IsScalar():
		return MakeScalar(left.Scalar() * right.Scalar()), nil

	case left.Rank == RankMatrix && right.Rank == RankMatrix:
		if left.Width != right.Depth {
			return Value{}, diag.Fatalf("matrix multiplication failed, %dx%d and %dx%d are not conformable",
				left.Depth, left.Width, right.Depth, right.Width)
		}
		result, err := Allocate(RankMatrix, left.Depth, right.Width)
		if err != nil {
			return Value{}, err
		}
		for i := 0; i < left.Depth; i++ {
			for j := 0; j < right.Width; j++ {
				sum := 0.0
				for k := 0; k < left.Width; k++ {
					sum += left.Elements[i*left.Width+k] * right.Elements[k*right.Width+j]
				}
				result.Elements[i*result.Width+j] = sum
			}
		}
		return result, nil

	default:
		return Value{}, diag.Fatalf("multiplication of rank %d by rank %d is not yet supported", left.Rank, right.Rank)
	}
}

// Divide handles scalar quotients and scaling of any value by a scalar
func Divide(left, right Value) (Value, error) {
	if !right.IsScalar() {
		return Value{}, diag.Fatalf("division by a non-scalar is not yet supported")
	}
	d := right.Scalar()
	result := shaped(left)
	for n := range result.Elements {
		result.Elements[n] = left.Elements[n] / d
	}
	return result, nil
}

// Power raises a scalar to a scalar power
func Power(left, right Value) (Value, error) {
	if !left.IsScalar() || !right.IsScalar() {
		return Value{}, diag.Fatalf("power operation on non-scalars is not yet supported")
	}
	return MakeScalar(math.Pow(left.Scalar(), right.Scalar())), nil
}

// Negate applies unary minus to every element
func Negate(v Value) Value {
	result := shaped(v)
	for n := range result.Elements {
		result.Elements[n] = -v.Elements[n]
	}
	return result
}

func scalarFunc(name string, v Value, f func(float64) float64) (Value, error) {
	if !v.IsScalar() {
		return Value{}, diag.Fatalf("%s is only defined for scalars", name)
	}
	return MakeScalar(f(v.Scalar())), nil
}

func Abs(v Value) (Value, error)   { return scalarFunc("ABS", v, math.Abs) }
func Atan(v Value) (Value, error)  { return scalarFunc("ATAN", v, math.Atan) }
func Cos(v Value) (Value, error)   { return scalarFunc("COS", v, math.Cos) }
func Sin(v Value) (Value, error)   { return scalarFunc("SIN", v, math.Sin) }
func Exp(v Value) (Value, error)   { return scalarFunc("EXP", v, math.Exp) }
func Floor(v Value) (Value, error) { return scalarFunc("FLOOR", v, math.Floor) }
func Log(v Value) (Value, error)   { return scalarFunc("LOG", v, math.Log10) }
func Ln(v Value) (Value, error)    { return scalarFunc("LN", v, math.Log) }
func Sqrt(v Value) (Value, error)  { return scalarFunc("SQRT", v, math.Sqrt) }

// Max returns the larger of two scalars
func Max(left, right Value) (Value, error) {
	if !left.IsScalar() || !right.IsScalar() {
		return Value{}, diag.Fatalf("MAX is only defined for scalars")
	}
	return MakeScalar(math.Max(left.Scalar(), right.Scalar())), nil
}

// Min returns the smaller of two scalars
func Min(left, right Value) (Value, error) {
	if !left.IsScalar() || !right.IsScalar() {
		return Value{}, diag.Fatalf("MIN is only defined for scalars")
	}
	return MakeScalar(math.Min(left.Scalar(), right.Scalar())), nil
}

// Rand draws from [0, 1). The scalar argument is required but not consulted.
func Rand(v Value, rng *rand.Rand) (Value, error) {
	if !v.IsScalar() {
		return Value{}, diag.Fatalf("RAND is only defined for scalars")
	}
	return MakeScalar(rng.Float64()), nil
}
