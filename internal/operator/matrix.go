// matrix.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package operator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"goscf/internal/orbital"
)

// MatrixOperator realizes a QMOperator as a dense matrix over the
// coefficient-vector function representation. A static operator wraps a
// prebuilt matrix; a deferred operator rebuilds its matrix at every
// Setup and drops it on Clear (the two-electron operators, whose matrix
// depends on the live density).
type MatrixOperator struct {
	name  string
	build func(prec float64) (*mat.Dense, error)

	m      *mat.Dense
	metric *mat.Cholesky
	static bool
	active bool
}

// NewMatrixOperator wraps a fixed operator matrix.
func NewMatrixOperator(name string, m mat.Matrix) *MatrixOperator {
	return &MatrixOperator{name: name, m: mat.DenseCopyOf(m), static: true}
}

// NewDeferredOperator wraps a matrix rebuilt at each Setup.
func NewDeferredOperator(name string, build func(prec float64) (*mat.Dense, error)) *MatrixOperator {
	return &MatrixOperator{name: name, build: build}
}

// WithMetric attaches the basis overlap matrix, needed to apply the
// operator in a non-orthogonal basis.
func (op *MatrixOperator) WithMetric(s mat.Symmetric) *MatrixOperator {
	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		panic("operator: basis overlap not positive definite")
	}
	op.metric = &chol
	return op
}

func (op *MatrixOperator) Setup(prec float64) error {
	if prec < 0 {
		panic(ErrPrecision)
	}
	if !op.static {
		m, err := op.build(prec)
		if err != nil {
			return fmt.Errorf("operator %s: %w", op.name, err)
		}
		op.m = m
	}
	op.active = true
	return nil
}

func (op *MatrixOperator) Clear() {
	if !op.static {
		op.m = nil
	}
	op.active = false
}

// Apply maps each orbital's coefficient vector through the operator
// matrix. In a non-orthogonal basis the result solves S·r = M·c, so
// that overlaps with the result reproduce the matrix elements.
func (op *MatrixOperator) Apply(phi *orbital.Set) *orbital.Set {
	if !op.active {
		panic(ErrNotSetup)
	}
	out := make([]*orbital.Orbital, phi.Len())
	for i := 0; i < phi.Len(); i++ {
		o := phi.At(i).ParamCopy()
		if phi.At(i).HasReal() {
			o.Re = op.applyFunc(phi.At(i).Re)
		}
		if phi.At(i).HasImag() {
			o.Im = op.applyFunc(phi.At(i).Im)
		}
		out[i] = o
	}
	return orbital.NewSet(out...)
}

func (op *MatrixOperator) applyFunc(f orbital.Function) orbital.Function {
	v, ok := f.(*orbital.Vector)
	if !ok {
		panic(orbital.ErrFunctionKind)
	}
	n := v.Coeffs().Len()
	r := mat.NewVecDense(n, nil)
	r.MulVec(op.m, v.Coeffs())
	if op.metric != nil {
		var solved mat.VecDense
		if err := op.metric.SolveVecTo(&solved, r); err != nil {
			panic("operator: metric solve failed")
		}
		r = &solved
	}
	return v.Wrap(r)
}

// MatrixElements computes <bra_i|Op|ket_j> = c_iᵀ·M·c_j.
func (op *MatrixOperator) MatrixElements(bra, ket *orbital.Set) *mat.Dense {
	if !op.active {
		panic(ErrNotSetup)
	}
	out := mat.NewDense(bra.Len(), ket.Len(), nil)
	for i := 0; i < bra.Len(); i++ {
		ci := coeffs(bra.At(i))
		for j := 0; j < ket.Len(); j++ {
			out.Set(i, j, mat.Inner(ci, op.m, coeffs(ket.At(j))))
		}
	}
	return out
}

func coeffs(o *orbital.Orbital) *mat.VecDense {
	v, ok := o.Re.(*orbital.Vector)
	if !ok {
		panic(orbital.ErrFunctionKind)
	}
	return v.Coeffs()
}
