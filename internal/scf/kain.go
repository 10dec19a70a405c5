// kain.go --  This file is part of the goscf project.
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

	"goscf/internal/orbital"
)

// Accelerator extrapolates an improved orbital update from a bounded
// window of past iterates and residuals.
type Accelerator interface {
	// Accelerate records the iterate (phi, dPhi) and returns the update
	// to use in its place. With insufficient history the update passes
	// through unchanged.
	Accelerate(phi, dPhi *orbital.Set) *orbital.Set
	// Clear drops the accumulated history.
	Clear()
}

// KAIN is the Krylov-accelerated inexact Newton mixer: the update is
// corrected by a linear combination of past iterate and residual
// differences, with coefficients from a small least-squares system.
type KAIN struct {
	window int
	phi    []*orbital.Set
	dPhi   []*orbital.Set
}

func NewKAIN(window int) *KAIN {
	if window < 1 {
		window = 1
	}
	return &KAIN{window: window}
}

func (k *KAIN) Clear() {
	k.phi = nil
	k.dPhi = nil
}

func (k *KAIN) Accelerate(phi, dPhi *orbital.Set) *orbital.Set {
	k.phi = append(k.phi, cloneSet(phi))
	k.dPhi = append(k.dPhi, cloneSet(dPhi))
	if len(k.phi) > k.window+1 {
		k.phi = k.phi[1:]
		k.dPhi = k.dPhi[1:]
	}

	m := len(k.phi) - 1
	if m < 1 {
		return dPhi
	}

	// A_ij = <phi_i - phi_m | dPhi_j - dPhi_m>
	// b_i  = -<phi_i - phi_m | dPhi_m>
	a := mat.NewDense(m, m, nil)
	b := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		dxi := orbital.Add(1, k.phi[i], -1, k.phi[m])
		for j := 0; j < m; j++ {
			dfj := orbital.Add(1, k.dPhi[j], -1, k.dPhi[m])
			a.Set(i, j, setDot(dxi, dfj))
		}
		b.SetVec(i, -setDot(dxi, k.dPhi[m]))
	}

	var lu mat.LU
	lu.Factorize(a)
	var c mat.VecDense
	if err := lu.SolveVecTo(&c, false, b); err != nil {
		// Singular history; fall back to the plain update.
		return dPhi
	}

	out := cloneSet(k.dPhi[m])
	for j := 0; j < m; j++ {
		step := orbital.Add(1, k.phi[j], -1, k.phi[m])
		step = orbital.Add(1, step, 1, orbital.Add(1, k.dPhi[j], -1, k.dPhi[m]))
		out = orbital.Add(1, out, c.AtVec(j), step)
	}
	return out
}

func setDot(x, y *orbital.Set) float64 {
	if x.Len() != y.Len() {
		panic(orbital.ErrSizeMismatch)
	}
	res := 0.0
	for i := 0; i < x.Len(); i++ {
		res += x.At(i).Dot(y.At(i))
	}
	return res
}

func cloneSet(s *orbital.Set) *orbital.Set {
	out := make([]*orbital.Orbital, s.Len())
	for i := 0; i < s.Len(); i++ {
		o := s.At(i).ParamCopy()
		if s.At(i).HasReal() {
			o.Re = s.At(i).Re.Clone()
		}
		if s.At(i).HasImag() {
			o.Im = s.At(i).Im.Clone()
		}
		o.SetError(s.At(i).Error())
		out[i] = o
	}
	return orbital.NewSet(out...)
}
