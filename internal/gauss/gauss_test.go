// gauss_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package gauss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func h2(dist float64) []Atom {
	return []Atom{
		{Z: 1, Symbol: "H", Center: [3]float64{0, 0, 0}},
		{Z: 1, Symbol: "H", Center: [3]float64{dist, 0, 0}},
	}
}

func TestAtomicNumber(t *testing.T) {
	assert.Equal(t, 1, AtomicNumber("H"))
	assert.Equal(t, 1, AtomicNumber("h"))
	assert.Equal(t, 17, AtomicNumber("Cl"))
	assert.Equal(t, 0, AtomicNumber("Xx"))
}

func TestBasisFor(t *testing.T) {
	atoms := h2(1.4)

	sto, err := BasisFor("STO-3G", atoms)
	require.NoError(t, err)
	assert.Len(t, sto, 2)
	assert.Len(t, sto[0].Prims, 3)

	split, err := BasisFor("6-31g", atoms)
	require.NoError(t, err)
	assert.Len(t, split, 4)
	assert.Len(t, split[1].Prims, 1)

	_, err = BasisFor("cc-pvdz", atoms)
	assert.Error(t, err)

	_, err = BasisFor("sto-3g", []Atom{{Z: 6, Symbol: "C"}})
	assert.Error(t, err)
}

func TestOverlapNormalizedDiagonal(t *testing.T) {
	shells, err := BasisFor("sto-3g", h2(1.4))
	require.NoError(t, err)

	s := OverlapMatrix(shells)
	for i := 0; i < len(shells); i++ {
		assert.InDelta(t, 1.0, s.At(i, i), 1e-4, "contracted functions are normalized")
	}
	assert.Greater(t, s.At(0, 1), 0.0)
	assert.Less(t, s.At(0, 1), 1.0)
}

func TestOverlapDecaysWithDistance(t *testing.T) {
	near, _ := BasisFor("sto-3g", h2(1.0))
	far, _ := BasisFor("sto-3g", h2(3.0))
	assert.Greater(t, OverlapMatrix(near).At(0, 1), OverlapMatrix(far).At(0, 1))
}

func TestNuclearRepulsion(t *testing.T) {
	assert.InDelta(t, 1.0/1.4, NuclearRepulsion(h2(1.4)), 1e-14)
	assert.Equal(t, 0.0, NuclearRepulsion(h2(1.4)[:1]))
}

func TestKineticPositiveDiagonal(t *testing.T) {
	shells, _ := BasisFor("sto-3g", h2(1.4))
	k := KineticMatrix(shells)
	for i := 0; i < len(shells); i++ {
		assert.Greater(t, k.At(i, i), 0.0)
	}
}

func TestNuclearAttractionNegative(t *testing.T) {
	shells, _ := BasisFor("sto-3g", h2(1.4))
	v := NuclearMatrix(shells, h2(1.4))
	for i := 0; i < len(shells); i++ {
		assert.Less(t, v.At(i, i), 0.0)
	}
}

func TestTwoElectronSymmetry(t *testing.T) {
	shells, _ := BasisFor("sto-3g", h2(1.4))
	eri := TwoElectron(shells)

	n := len(shells)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					v := eri.At(i, j, k, l)
					assert.InDelta(t, v, eri.At(j, i, k, l), 1e-12)
					assert.InDelta(t, v, eri.At(i, j, l, k), 1e-12)
					assert.InDelta(t, v, eri.At(k, l, i, j), 1e-12)
				}
			}
		}
	}
	assert.Greater(t, eri.At(0, 0, 0, 0), 0.0)
}

func TestBoysLimits(t *testing.T) {
	assert.Equal(t, 1.0, boys(0, 0))
	assert.InDelta(t, 1.0/3.0, boys(0, 1), 1e-14)
	assert.Less(t, boys(5, 0), boys(1, 0), "Boys function decreases")
}

func TestSystemSetup(t *testing.T) {
	sys, err := NewSystem(h2(1.4), "sto-3g", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sys.NOcc())
	assert.Equal(t, 2, sys.NBasis())
	assert.InDelta(t, 1.0/1.4, sys.NuclearEnergy(), 1e-14)

	_, err = NewSystem(h2(1.4)[:1], "sto-3g", nil)
	assert.Error(t, err, "odd electron count is rejected")
}

func TestInitialGuessNormalized(t *testing.T) {
	sys, err := NewSystem(h2(1.4), "sto-3g", nil)
	require.NoError(t, err)

	phi, fmat := sys.InitialGuess()
	require.Equal(t, 1, phi.Len())
	assert.InDelta(t, 1.0, phi.At(0).Norm(), 1e-12, "metric-weighted norm")
	assert.Less(t, fmat.At(0, 0), 0.0, "core level is bound")
	assert.Same(t, phi, sys.PhiRef().Get())
}

func TestInteractionEnergy(t *testing.T) {
	sys, err := NewSystem(h2(1.4), "sto-3g", nil)
	require.NoError(t, err)

	ext := []Atom{{Z: 2, Symbol: "He", Center: [3]float64{0, 0, 10}}}
	e := sys.InteractionEnergy(ext)
	assert.Greater(t, e, 0.0)

	// A coincident charge is skipped, not infinite.
	onTop := []Atom{{Z: 1, Symbol: "H", Center: [3]float64{0, 0, 0}}}
	assert.InDelta(t, 1.0/1.4, sys.InteractionEnergy(onTop), 1e-12)
}
