// orbital_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package orbital

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOccupationDefaults(t *testing.T) {
	assert.Equal(t, 2.0, New(Paired, -1, ReplicatedOwner()).Occ())
	assert.Equal(t, 1.0, New(Alpha, -1, ReplicatedOwner()).Occ())
	assert.Equal(t, 1.0, New(Beta, -1, ReplicatedOwner()).Occ())
	assert.Equal(t, 0.0, New(Paired, 0, ReplicatedOwner()).Occ(), "explicit occupation wins")
}

func TestSpinString(t *testing.T) {
	assert.Equal(t, "p", Paired.String())
	assert.Equal(t, "a", Alpha.String())
	assert.Equal(t, "b", Beta.String())
}

func TestInvalidSpinPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrSpin, func() {
		New(Spin(7), -1, ReplicatedOwner())
	})
}

func TestOwnerTags(t *testing.T) {
	repl := ReplicatedOwner()
	assert.True(t, repl.IsReplicated())
	_, ok := repl.Rank()
	assert.False(t, ok)

	owned := OwnedBy(3)
	assert.False(t, owned.IsReplicated())
	rank, ok := owned.Rank()
	require.True(t, ok)
	assert.Equal(t, 3, rank)

	assert.PanicsWithValue(t, ErrOwner, func() { OwnedBy(-1) })
}

func TestZeroOwnerIsReplicated(t *testing.T) {
	var o Owner
	assert.True(t, o.IsReplicated())
}

func TestParamCopyKeepsMetadata(t *testing.T) {
	o := New(Alpha, 1, OwnedBy(2))
	o.Re = NewVector([]float64{1, 2})
	o.SetError(0.5)

	c := o.ParamCopy()
	assert.Equal(t, Alpha, c.Spin())
	assert.Equal(t, 1.0, c.Occ())
	assert.Equal(t, o.Owner(), c.Owner())
	assert.False(t, c.HasReal(), "numerical parts are not copied")
	assert.Equal(t, 0.0, c.Error())
}

func TestOrbitalDotAndNorm(t *testing.T) {
	a := New(Paired, -1, ReplicatedOwner())
	a.Re = NewVector([]float64{3, 4})
	assert.InDelta(t, 5.0, a.Norm(), 1e-14)

	b := New(Paired, -1, ReplicatedOwner())
	b.Re = NewVector([]float64{1, 0})
	assert.InDelta(t, 3.0, a.Dot(b), 1e-14)

	// Complex orbital: both components contribute.
	a.Im = NewVector([]float64{0, 2})
	assert.InDelta(t, math.Sqrt(29), a.Norm(), 1e-14)
}

func TestVectorMetricDot(t *testing.T) {
	// Non-orthogonal basis with overlap 0.5 between the two functions.
	s := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})
	a := NewMetricVector([]float64{1, 0}, s)
	b := NewMetricVector([]float64{0, 1}, s)
	assert.InDelta(t, 0.5, a.Dot(b), 1e-14)
	assert.InDelta(t, 1.0, a.Norm(), 1e-14)
}

func TestVectorKindMismatchPanics(t *testing.T) {
	v := NewVector([]float64{1})
	assert.PanicsWithValue(t, ErrFunctionKind, func() {
		v.Dot(badFunction{})
	})
	assert.PanicsWithValue(t, ErrSizeMismatch, func() {
		v.AddScaled(1, NewVector([]float64{1, 2}))
	})
}

type badFunction struct{}

func (badFunction) Clone() Function             { return badFunction{} }
func (badFunction) Scale(float64)               {}
func (badFunction) AddScaled(float64, Function) {}
func (badFunction) Dot(Function) float64        { return 0 }
func (badFunction) Norm() float64               { return 0 }

func TestSetErrors(t *testing.T) {
	s := NewSet(
		New(Paired, -1, ReplicatedOwner()),
		New(Paired, -1, ReplicatedOwner()),
	)
	s.SetErrors([]float64{0.1, 0.4})
	assert.Equal(t, []float64{0.1, 0.4}, s.Errors())
	assert.Equal(t, 0.4, s.MaxError())
	assert.Equal(t, []float64{2, 2}, s.Occupations())

	assert.PanicsWithValue(t, ErrSizeMismatch, func() {
		s.SetErrors([]float64{0.1})
	})
}

func TestRefSwaps(t *testing.T) {
	a := NewSet(New(Paired, -1, ReplicatedOwner()))
	b := NewSet(New(Paired, -1, ReplicatedOwner()))

	r := NewRef(a)
	assert.Same(t, a, r.Get())
	r.Set(b)
	assert.Same(t, b, r.Get())
}
