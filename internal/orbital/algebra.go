// algebra.go --  This file is part of the goscf project.
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

	"gonum.org/v1/gonum/mat"
)

// Add returns the element-wise linear combination a*x + b*y. Metadata is
// inherited from x.
func Add(a float64, x *Set, b float64, y *Set) *Set {
	if x.Len() != y.Len() {
		panic(ErrSizeMismatch)
	}
	out := make([]*Orbital, x.Len())
	for i := range out {
		o := x.At(i).ParamCopy()
		o.Re = combine(a, x.At(i).Re, b, y.At(i).Re)
		o.Im = combine(a, x.At(i).Im, b, y.At(i).Im)
		out[i] = o
	}
	return NewSet(out...)
}

func combine(a float64, f Function, b float64, g Function) Function {
	switch {
	case f == nil && g == nil:
		return nil
	case f == nil:
		out := g.Clone()
		out.Scale(b)
		return out
	case g == nil:
		out := f.Clone()
		out.Scale(a)
		return out
	}
	out := f.Clone()
	out.Scale(a)
	out.AddScaled(b, g)
	return out
}

// Norms computes the per-orbital L2 norms.
func Norms(s *Set) []float64 {
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = s.At(i).Norm()
	}
	return out
}

// Overlap computes the overlap matrix S_ij = <bra_i|ket_j>.
func Overlap(bra, ket *Set) *mat.Dense {
	out := mat.NewDense(bra.Len(), ket.Len(), nil)
	for i := 0; i < bra.Len(); i++ {
		for j := 0; j < ket.Len(); j++ {
			out.Set(i, j, bra.At(i).Dot(ket.At(j)))
		}
	}
	return out
}

// Rotate applies a square rotation matrix to the set:
// out_i = sum_j U_ij phi_j.
func Rotate(u mat.Matrix, s *Set) *Set {
	r, c := u.Dims()
	if r != c || c != s.Len() {
		panic(ErrSizeMismatch)
	}
	out := make([]*Orbital, r)
	for i := 0; i < r; i++ {
		o := s.At(i).ParamCopy()
		for j := 0; j < c; j++ {
			o.Re = combine(1, o.Re, u.At(i, j), s.At(j).Re)
			o.Im = combine(1, o.Im, u.At(i, j), s.At(j).Im)
		}
		out[i] = o
	}
	return NewSet(out...)
}

// LowdinMatrix computes the symmetric orthonormalization transform
// S^(-1/2) from the set's overlap matrix.
func LowdinMatrix(s *Set) *mat.Dense {
	n := s.Len()
	ov := Overlap(s, s)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(ov.At(i, j)+ov.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		panic("orbital: overlap eigendecomposition failed")
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)

	vals := eig.Values(nil)
	inv := make([]float64, n)
	for i, w := range vals {
		inv[i] = 1.0 / math.Sqrt(w)
	}

	var out mat.Dense
	out.Mul(&ev, mat.NewDiagDense(n, inv))
	out.Mul(&out, ev.T())
	return &out
}

// Orthonormalize rotates the set into a symmetrically (Löwdin)
// orthonormalized basis, returning the rotated set and the transform.
func Orthonormalize(s *Set) (*Set, *mat.Dense) {
	u := LowdinMatrix(s)
	return Rotate(u, s), u
}

// Transform returns U·F·Uᵀ, the Fock matrix in the rotated basis.
func Transform(u mat.Matrix, f *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(u, f)
	out.Mul(&out, u.T())
	return &out
}

// Diagonalize rotates the set into the canonical basis in which the
// Fock matrix is diagonal. Returns the rotated set and the diagonal
// matrix. The input set must be orthonormal.
func Diagonalize(s *Set, f *mat.Dense) (*Set, *mat.Dense) {
	n := s.Len()
	r, c := f.Dims()
	if r != n || c != n {
		panic(ErrSizeMismatch)
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(f.At(i, j)+f.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		panic("orbital: Fock eigendecomposition failed")
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)

	u := mat.DenseCopyOf(ev.T())
	return Rotate(u, s), Transform(u, f)
}

// Localize rotates the set by the Cholesky factor of its overlap
// matrix. The resulting orbitals are orthonormal and retain spatial
// locality; the criterion is independent of the Fock matrix. Returns
// the rotated set and the transform.
func Localize(s *Set) (*Set, *mat.Dense) {
	n := s.Len()
	ov := Overlap(s, s)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(ov.At(i, j)+ov.At(j, i)))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		panic("orbital: overlap Cholesky factorization failed")
	}
	var l mat.TriDense
	chol.LTo(&l)
	var li mat.TriDense
	if err := li.InverseTri(&l); err != nil {
		panic("orbital: overlap Cholesky factor not invertible")
	}

	u := mat.NewDense(n, n, nil)
	u.Copy(&li)
	return Rotate(u, s), u
}
