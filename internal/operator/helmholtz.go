// helmholtz.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package operator

import (
	"gonum.org/v1/gonum/mat"

	"goscf/internal/orbital"
)

// Resolvent is a single-orbital Green's function at a fixed energy level.
type Resolvent interface {
	Apply(rhs *orbital.Orbital) *orbital.Orbital
}

// ResolventFactory builds a resolvent at an energy level and precision.
type ResolventFactory func(lambda, prec float64) (Resolvent, error)

// Helmholtz is the per-orbital resolvent vector used to precondition
// the SCF update. Setup binds it to the current orbital energies (the
// Fock matrix diagonal); Clear releases the per-orbital operators.
type Helmholtz struct {
	factory ResolventFactory
	pool    *orbital.Pool

	prec   float64
	lambda []float64
	ops    []Resolvent
}

// NewHelmholtz builds an empty preconditioner. The pool may be nil for
// serial application.
func NewHelmholtz(factory ResolventFactory, pool *orbital.Pool) *Helmholtz {
	return &Helmholtz{factory: factory, pool: pool}
}

// Setup builds one resolvent per energy level at the working precision.
func (h *Helmholtz) Setup(prec float64, lambda []float64) error {
	if prec < 0 {
		panic(ErrPrecision)
	}
	h.prec = prec
	h.lambda = append([]float64(nil), lambda...)
	h.ops = make([]Resolvent, len(lambda))
	for i, l := range lambda {
		op, err := h.factory(l, prec)
		if err != nil {
			return err
		}
		h.ops[i] = op
	}
	return nil
}

// Clear releases the per-orbital operators but keeps the energy levels,
// which the Fock matrix update still reads within the same iteration.
func (h *Helmholtz) Clear() {
	h.ops = nil
}

// Lambda returns the energy levels of the last Setup.
func (h *Helmholtz) Lambda() []float64 { return h.lambda }

// LambdaMatrix returns the energy levels as a diagonal matrix.
func (h *Helmholtz) LambdaMatrix() *mat.DiagDense {
	return mat.NewDiagDense(len(h.lambda), h.lambda)
}

// Apply maps each right-hand-side orbital through its resolvent,
// fanned out across the pool when one is attached.
func (h *Helmholtz) Apply(rhs *orbital.Set) *orbital.Set {
	if h.ops == nil {
		panic(ErrNotSetup)
	}
	if rhs.Len() != len(h.ops) {
		panic(orbital.ErrSizeMismatch)
	}
	out := make([]*orbital.Orbital, rhs.Len())
	if h.pool != nil {
		h.pool.ForEach(rhs, func(i int, o *orbital.Orbital) error {
			out[i] = h.ops[i].Apply(o)
			return nil
		})
	} else {
		for i := 0; i < rhs.Len(); i++ {
			out[i] = h.ops[i].Apply(rhs.At(i))
		}
	}
	return orbital.NewSet(out...)
}

// MatrixResolventFactory realizes the resolvent over a coefficient
// basis: applying the factory's operator at level lambda solves
// (A - lambda*S)·c = -S·d for the right-hand side coefficients d, with
// S the identity for an orthonormal basis. Eigenfunctions of the full
// operator are fixed points of the preconditioned iteration by
// construction.
func MatrixResolventFactory(a mat.Matrix, s mat.Symmetric) ResolventFactory {
	return func(lambda, prec float64) (Resolvent, error) {
		n, _ := a.Dims()
		shifted := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				sij := 0.0
				if s != nil {
					sij = s.At(i, j)
				} else if i == j {
					sij = 1
				}
				shifted.Set(i, j, a.At(i, j)-lambda*sij)
			}
		}
		var lu mat.LU
		lu.Factorize(shifted)
		return &matrixResolvent{lu: lu, s: s, n: n}, nil
	}
}

type matrixResolvent struct {
	lu mat.LU
	s  mat.Symmetric
	n  int
}

func (r *matrixResolvent) Apply(rhs *orbital.Orbital) *orbital.Orbital {
	out := rhs.ParamCopy()
	if rhs.HasReal() {
		out.Re = r.applyFunc(rhs.Re)
	}
	if rhs.HasImag() {
		out.Im = r.applyFunc(rhs.Im)
	}
	return out
}

func (r *matrixResolvent) applyFunc(f orbital.Function) orbital.Function {
	v, ok := f.(*orbital.Vector)
	if !ok {
		panic(orbital.ErrFunctionKind)
	}
	b := mat.NewVecDense(r.n, nil)
	if r.s != nil {
		b.MulVec(r.s, v.Coeffs())
	} else {
		b.CopyVec(v.Coeffs())
	}
	b.ScaleVec(-1, b)

	var solved mat.VecDense
	if err := r.lu.SolveVecTo(&solved, false, b); err != nil {
		panic("operator: resolvent solve failed")
	}
	return v.Wrap(&solved)
}
