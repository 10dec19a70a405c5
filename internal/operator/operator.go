// operator.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package operator defines the one- and two-electron operator contract
// consumed by the SCF engine, the Fock aggregate, and the Helmholtz
// preconditioner.
package operator

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"goscf/internal/orbital"
)

var (
	// ErrPrecision flags a negative working precision. Contract
	// violation: the caller derived an invalid precision.
	ErrPrecision = errors.New("operator: negative precision")
	// ErrNotSetup flags use of an operator outside its setup/clear
	// window. Contract violation, not recoverable.
	ErrNotSetup = errors.New("operator: operator not set up")
)

// QMOperator maps orbital sets to orbital sets. Internal state is built
// by Setup at a working precision and must be released by Clear before
// the next Setup, bounding the memory high-water mark to one
// iteration's worth.
type QMOperator interface {
	Setup(prec float64) error
	Clear()
	Apply(phi *orbital.Set) *orbital.Set
	MatrixElements(bra, ket *orbital.Set) *mat.Dense
}

// Fock aggregates the one- and two-electron sub-operators of the
// effective one-particle Hamiltonian. Any sub-operator may be nil.
type Fock struct {
	Kinetic  QMOperator
	Nuclear  QMOperator
	Coulomb  QMOperator
	Exchange QMOperator
	XC       QMOperator

	// NuclearRepulsion is the constant nucleus-nucleus energy of the
	// system, included in the total energy but not in the operator.
	NuclearRepulsion float64

	active bool
}

func (f *Fock) parts() []QMOperator {
	return []QMOperator{f.Kinetic, f.Nuclear, f.Coulomb, f.Exchange, f.XC}
}

// Setup builds every sub-operator at the working precision.
func (f *Fock) Setup(prec float64) error {
	if prec < 0 {
		panic(ErrPrecision)
	}
	for _, op := range f.parts() {
		if op == nil {
			continue
		}
		if err := op.Setup(prec); err != nil {
			return err
		}
	}
	f.active = true
	return nil
}

// Clear releases every sub-operator's internal state.
func (f *Fock) Clear() {
	for _, op := range f.parts() {
		if op != nil {
			op.Clear()
		}
	}
	f.active = false
}

// IsSetup reports whether the aggregate is inside a setup/clear window.
func (f *Fock) IsSetup() bool { return f.active }

// WithoutNuclear returns a view holding only the two-electron part
// (Coulomb, exchange, XC). Used by the Fock matrix update engine, which
// recomputes the kinetic and nuclear contributions separately.
func (f *Fock) WithoutNuclear() *Fock {
	return &Fock{Coulomb: f.Coulomb, Exchange: f.Exchange, XC: f.XC, active: f.active}
}

// Apply maps the orbital set through the full operator sum.
func (f *Fock) Apply(phi *orbital.Set) *orbital.Set {
	return f.apply(phi, true)
}

// ApplyPotential maps the orbital set through every sub-operator except
// the kinetic one. This is the potential part entering the Helmholtz
// argument; the kinetic part is inverted by the resolvent itself.
func (f *Fock) ApplyPotential(phi *orbital.Set) *orbital.Set {
	return f.apply(phi, false)
}

func (f *Fock) apply(phi *orbital.Set, kinetic bool) *orbital.Set {
	if !f.active {
		panic(ErrNotSetup)
	}
	var out *orbital.Set
	for _, op := range f.parts() {
		if op == nil || (!kinetic && op == f.Kinetic) {
			continue
		}
		part := op.Apply(phi)
		if out == nil {
			out = part
		} else {
			out = orbital.Add(1, out, 1, part)
		}
	}
	if out == nil {
		out = phi.ParamCopy()
	}
	return out
}

// MatrixElements computes <bra_i|F|ket_j> summed over the sub-operators.
// With no sub-operators present the result is a zero matrix.
func (f *Fock) MatrixElements(bra, ket *orbital.Set) *mat.Dense {
	out := mat.NewDense(bra.Len(), ket.Len(), nil)
	for _, op := range f.parts() {
		if op == nil {
			continue
		}
		out.Add(out, op.MatrixElements(bra, ket))
	}
	return out
}

// Trace returns the occupation-weighted diagonal sum of the operator
// over the set: sum_i occ_i <phi_i|op|phi_i>.
func Trace(op QMOperator, phi *orbital.Set) float64 {
	m := op.MatrixElements(phi, phi)
	res := 0.0
	for i := 0; i < phi.Len(); i++ {
		res += phi.At(i).Occ() * m.At(i, i)
	}
	return res
}
