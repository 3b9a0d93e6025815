package types

import (
	"fmt"
	"strconv"
	"strings"

	"cupl/diag"
)

// Rank classifies a value's shape
const (
	RankScalar = 0
	RankVector = 1
	RankMatrix = 2
)

// Value is a CUPL scalar, vector or matrix.
// Elements are stored row-major: element (i, j) lives at i*Width + j,
// where i < Depth counts rows and j < Width counts columns. A vector is a
// single row.
type Value struct {
	Rank     int
	Width    int
	Depth    int
	Elements []float64
}

// Tracker observes value allocation and release (allocation tracing)
type Tracker interface {
	Allocated(v Value)
	Released(v Value)
}

var tracker Tracker

// SetTracker installs t as the allocation observer; nil disables tracking.
// It returns the previous tracker.
func SetTracker(t Tracker) Tracker {
	prev := tracker
	tracker = t
	return prev
}

func allocated(v Value) Value {
	if tracker != nil {
		tracker.Allocated(v)
	}
	return v
}

// MakeScalar creates a rank-0 value
func MakeScalar(x float64) Value {
	return allocated(Value{Rank: RankScalar, Width: 1, Depth: 1, Elements: []float64{x}})
}

// Allocate creates a zero-filled vector (rank 1, depth ignored) or matrix
func Allocate(rank, depth, width int) (Value, error) {
	switch rank {
	case RankScalar:
		return MakeScalar(0), nil
	case RankVector:
		depth = 1
	case RankMatrix:
	default:
		return Value{}, diag.Fatalf("cannot allocate a value of rank %d", rank)
	}
	if width < 1 || depth < 1 {
		return Value{}, diag.Fatalf("cannot allocate a %dx%d value", depth, width)
	}
	return allocated(Value{Rank: rank, Width: width, Depth: depth, Elements: make([]float64, width*depth)}), nil
}

// Copy makes a new value with its own element buffer
func Copy(v Value) Value {
	nv := v
	nv.Elements = make([]float64, len(v.Elements))
	copy(nv.Elements, v.Elements)
	return allocated(nv)
}

// Release gives up a value's element buffer. Releasing twice is harmless.
func Release(v *Value) {
	if v.Elements == nil {
		return
	}
	if tracker != nil {
		tracker.Released(*v)
	}
	v.Elements = nil
}

// shaped returns a zero-filled value congruent with v
func shaped(v Value) Value {
	return allocated(Value{Rank: v.Rank, Width: v.Width, Depth: v.Depth, Elements: make([]float64, v.Width*v.Depth)})
}

// Len returns the number of elements
func (v Value) Len() int {
	return v.Width * v.Depth
}

// IsScalar reports whether v is rank 0
func (v Value) IsScalar() bool {
	return v.Rank == RankScalar
}

// Scalar returns the single element of a scalar
func (v Value) Scalar() float64 {
	if len(v.Elements) == 0 {
		return 0
	}
	return v.Elements[0]
}

// Truthy reports whether a relation result holds
func (v Value) Truthy() bool {
	return v.Scalar() != 0
}

// Congruent reports whether v and o share rank, width and depth
func (v Value) Congruent(o Value) bool {
	return v.Rank == o.Rank && v.Width == o.Width && v.Depth == o.Depth
}

// Offset converts 1-based subscripts into an element index.
// Vectors take one subscript, matrices take (row, column).
func (v Value) Offset(subs ...int) (int, error) {
	switch {
	case v.Rank == RankVector && len(subs) == 1:
		if subs[0] < 1 || subs[0] > v.Width {
			return 0, diag.Fatalf("subscript %d out of range 1..%d", subs[0], v.Width)
		}
		return subs[0] - 1, nil
	case v.Rank == RankMatrix && len(subs) == 2:
		i, j := subs[0], subs[1]
		if i < 1 || i > v.Depth || j < 1 || j > v.Width {
			return 0, diag.Fatalf("subscript (%d,%d) out of range (1..%d,1..%d)", i, j, v.Depth, v.Width)
		}
		return (i-1)*v.Width + (j - 1), nil
	default:
		return 0, diag.Fatalf("%d subscript(s) given for a value of rank %d", len(subs), v.Rank)
	}
}

// ElementName renders the subscripted name of element n, e.g. X(2,3)
func (v Value) ElementName(name string, n int) string {
	switch v.Rank {
	case RankVector:
		return fmt.Sprintf("%s(%d)", name, n+1)
	case RankMatrix:
		return fmt.Sprintf("%s(%d,%d)", name, n/v.Width+1, n%v.Width+1)
	default:
		return name
	}
}

// String renders the value for traces
func (v Value) String() string {
	if v.Rank == RankScalar {
		return strconv.FormatFloat(v.Scalar(), 'g', -1, 64)
	}
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
	}
	return fmt.Sprintf("%dx%d[%s]", v.Depth, v.Width, strings.Join(parts, " "))
}
