package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func vec(elems ...float64) Value {
	return Value{Rank: RankVector, Width: len(elems), Depth: 1, Elements: elems}
}

func mat(depth, width int, elems ...float64) Value {
	if len(elems) != depth*width {
		panic("mat: wrong element count")
	}
	return Value{Rank: RankMatrix, Width: width, Depth: depth, Elements: elems}
}

type countingTracker struct {
	allocs, releases int
}

func (c *countingTracker) Allocated(v Value) { c.allocs++ }
func (c *countingTracker) Released(v Value)  { c.releases++ }

func TestMakeScalar(t *testing.T) {
	v := MakeScalar(2.5)
	be.Equal(t, v.Rank, RankScalar)
	be.Equal(t, v.Width, 1)
	be.Equal(t, v.Depth, 1)
	be.Equal(t, v.Scalar(), 2.5)
	be.Equal(t, len(v.Elements), v.Width*v.Depth)
}

func TestAllocate(t *testing.T) {
	v, err := Allocate(RankVector, 9, 4)
	be.Err(t, err, nil)
	be.Equal(t, v.Depth, 1)
	be.Equal(t, v.Width, 4)
	be.Equal(t, v.Elements, []float64{0, 0, 0, 0})

	m, err := Allocate(RankMatrix, 2, 3)
	be.Err(t, err, nil)
	be.Equal(t, m.Len(), 6)

	_, err = Allocate(RankMatrix, 0, 3)
	be.Err(t, err, "cannot allocate")
	_, err = Allocate(3, 1, 1)
	be.Err(t, err, "rank 3")
}

func TestCopyIsDeep(t *testing.T) {
	orig := vec(1, 2, 3)
	c := Copy(orig)
	c.Elements[0] = 99
	be.Equal(t, orig.Elements[0], 1.0)
	be.True(t, c.Congruent(orig))
}

func TestReleaseTracking(t *testing.T) {
	ct := &countingTracker{}
	prev := SetTracker(ct)
	defer SetTracker(prev)

	v := MakeScalar(1)
	w := Copy(v)
	Release(&v)
	Release(&v)
	Release(&w)
	be.Equal(t, ct.allocs, 2)
	be.Equal(t, ct.releases, 2)
	be.True(t, v.Elements == nil)
}

func TestOffset(t *testing.T) {
	m := mat(2, 3, 1, 2, 3, 4, 5, 6)
	n, err := m.Offset(2, 1)
	be.Err(t, err, nil)
	be.Equal(t, m.Elements[n], 4.0)

	_, err = m.Offset(3, 1)
	be.Err(t, err, "out of range")
	_, err = m.Offset(1)
	be.Err(t, err, "subscript")

	v := vec(7, 8)
	n, err = v.Offset(2)
	be.Err(t, err, nil)
	be.Equal(t, n, 1)
	_, err = MakeScalar(1).Offset(1)
	be.Err(t, err, "rank 0")
}

func TestElementName(t *testing.T) {
	m := mat(2, 3, 1, 2, 3, 4, 5, 6)
	be.Equal(t, m.ElementName("A", 4), "A(2,2)")
	be.Equal(t, vec(1, 2).ElementName("V", 1), "V(2)")
	be.Equal(t, MakeScalar(0).ElementName("X", 0), "X")
}

func TestString(t *testing.T) {
	be.Equal(t, MakeScalar(5).String(), "5")
	be.Equal(t, mat(2, 2, 1, 2, 3, 4.5).String(), "2x2[1 2 3 4.5]")
}
