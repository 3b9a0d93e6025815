package types

import (
	"math"

	"cupl/diag"
)

// Fuzz is the largest difference at which two elements still compare equal
const Fuzz = 1e-14

// FuzzyEqual compares two scalars within Fuzz
func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Fuzz
}

func congruent(op string, left, right Value) error {
	if !left.Congruent(right) {
		return diag.Fatalf("comparison %s failed, operands of different sizes", op)
	}
	return nil
}

// Eq holds when every pair of elements is fuzzy-equal
func Eq(left, right Value) (bool, error) {
	if err := congruent("=", left, right); err != nil {
		return false, err
	}
	for n := range left.Elements {
		if !FuzzyEqual(left.Elements[n], right.Elements[n]) {
			return false, nil
		}
	}
	return true, nil
}

// Le holds when no element of left exceeds its partner in right
func Le(left, right Value) (bool, error) {
	if err := congruent("LE", left, right); err != nil {
		return false, err
	}
	for n := range left.Elements {
		l, r := left.Elements[n], right.Elements[n]
		if l > r && !FuzzyEqual(l, r) {
			return false, nil
		}
	}
	return true, nil
}

// Ge holds when no element of left falls below its partner in right
func Ge(left, right Value) (bool, error) {
	if err := congruent("GE", left, right); err != nil {
		return false, err
	}
	for n := range left.Elements {
		l, r := left.Elements[n], right.Elements[n]
		if l < r && !FuzzyEqual(l, r) {
			return false, nil
		}
	}
	return true, nil
}

// Lt is Le and not Eq. For aggregates this holds when any one element is
// strictly less and the rest are equal, which is the language's definition.
func Lt(left, right Value) (bool, error) {
	le, err := Le(left, right)
	if err != nil || !le {
		return false, err
	}
	eq, err := Eq(left, right)
	return !eq, err
}

// Gt is Ge and not Eq
func Gt(left, right Value) (bool, error) {
	ge, err := Ge(left, right)
	if err != nil || !ge {
		return false, err
	}
	eq, err := Eq(left, right)
	return !eq, err
}

// Ne is not Eq
func Ne(left, right Value) (bool, error) {
	eq, err := Eq(left, right)
	return !eq, err
}

// Truth converts a relation outcome to the scalar 1 or 0
func Truth(b bool) Value {
	if b {
		return MakeScalar(1)
	}
	return MakeScalar(0)
}
