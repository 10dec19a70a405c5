// update.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package scf

import (
	"gonum.org/v1/gonum/mat"

	"goscf/internal/operator"
	"goscf/internal/orbital"
)

// Iteration carries one cycle's intermediates into the update strategy.
// An updater may replace Delta and PhiNext (acceleration); the
// controller rotates whatever PhiNext holds afterwards.
type Iteration struct {
	Prec    float64
	Phi     *orbital.Set   // current orbitals (orthonormal)
	PhiNext *orbital.Set   // provisional next orbitals (non-orthogonal)
	Delta   *orbital.Set   // PhiNext - Phi
	FMat    *mat.Dense     // current Fock matrix
	Lambda  []float64      // Helmholtz energy levels
	Fock    *operator.Fock // Fock operator at the current orbitals, set up
}

// Updater produces the next Fock matrix in the pre-rotation basis.
// Strategies replace the solver-subclass hierarchy of conventional SCF
// codes; the controller is strategy-agnostic.
type Updater interface {
	NextFock(it *Iteration) *mat.Dense
}

// IncrementalUpdater assembles F_{n+1} = F_n + dF from the orbital
// change, reusing matrix elements between the old, new and delta sets
// instead of recomputing the two-electron operators at the new
// orbitals. This is the energy-optimizer update path.
type IncrementalUpdater struct {
	// FockNext is the Fock operator at the next orbitals. Required;
	// operating without it is a programming error.
	FockNext *operator.Fock
	// PhiNextRef, when non-nil, is pointed at the orthonormalized next
	// orbitals while the next operator's two-electron parts are built.
	PhiNextRef *orbital.Ref
}

func (u *IncrementalUpdater) NextFock(it *Iteration) *mat.Dense {
	if u.FockNext == nil {
		panic(operator.ErrNotSetup)
	}
	if it.Prec < 0 {
		panic(operator.ErrPrecision)
	}
	n := it.Phi.Len()
	if it.PhiNext.Len() != n || it.Delta.Len() != n {
		panic(orbital.ErrSizeMismatch)
	}

	dS1 := orbital.Overlap(it.Delta, it.Phi)
	dS2 := orbital.Overlap(it.PhiNext, it.Delta)

	// Nuclear potential matrix is recomputed explicitly.
	dV := mat.NewDense(n, n, nil)
	if v := it.Fock.Nuclear; v != nil {
		dV = v.MatrixElements(it.PhiNext, it.Delta)
	}

	// Two-electron matrix at the current operator.
	fN := it.Fock.WithoutNuclear().MatrixElements(it.PhiNext, it.Phi)

	// The next Fock operator needs orthonormalized orbitals.
	phiOrtho, _ := orbital.Orthonormalize(it.PhiNext)
	if u.PhiNextRef != nil {
		u.PhiNextRef.Set(phiOrtho)
		defer u.PhiNextRef.Set(it.PhiNext)
	}
	if j := u.FockNext.Coulomb; j != nil {
		if err := j.Setup(it.Prec); err != nil {
			panic(err)
		}
		defer j.Clear()
	}
	if k := u.FockNext.Exchange; k != nil {
		if err := k.Setup(it.Prec); err != nil {
			panic(err)
		}
		defer k.Clear()
	}

	exNext := &operator.Fock{Coulomb: u.FockNext.Coulomb, Exchange: u.FockNext.Exchange}
	f1 := exNext.MatrixElements(it.Phi, it.Phi)
	f2 := exNext.MatrixElements(it.Phi, it.Delta)

	fNext := mat.NewDense(n, n, nil)
	fNext.Add(f1, f2)
	fNext.Add(fNext, f2.T())

	lambda := mat.NewDiagDense(n, it.Lambda)

	var dF1, dF2, dF3 mat.Dense
	dF1.Mul(dS1, it.FMat)
	dF2.Mul(dS2, lambda)
	dF3.Sub(fNext, fN)

	dF := mat.NewDense(n, n, nil)
	dF.Add(dV, &dF1)
	dF.Add(dF, &dF2)
	dF.Add(dF, &dF3)

	// The physical Fock matrix is Hermitian; asymmetry here is
	// numerical noise, not signal.
	var sym mat.Dense
	sym.Add(dF, dF.T())
	dF.Scale(0.5, &sym)

	out := mat.NewDense(n, n, nil)
	out.Add(it.FMat, dF)
	return out
}

// DirectUpdater recomputes the full Fock matrix at the new orbitals,
// optionally after history acceleration of the update. This is the
// orbital-optimizer path: more robust far from the fixed point, more
// expensive near it.
type DirectUpdater struct {
	FockNext   *operator.Fock
	PhiNextRef *orbital.Ref
	Accel      Accelerator
}

func (u *DirectUpdater) NextFock(it *Iteration) *mat.Dense {
	if u.FockNext == nil {
		panic(operator.ErrNotSetup)
	}
	if it.Prec < 0 {
		panic(operator.ErrPrecision)
	}

	if u.Accel != nil {
		it.Delta = u.Accel.Accelerate(it.Phi, it.Delta)
		it.PhiNext = orbital.Add(1, it.Phi, 1, it.Delta)
	}

	if u.PhiNextRef != nil {
		u.PhiNextRef.Set(it.PhiNext)
	}
	if err := u.FockNext.Setup(it.Prec); err != nil {
		panic(err)
	}
	defer u.FockNext.Clear()
	return u.FockNext.MatrixElements(it.PhiNext, it.PhiNext)
}
