// integrals.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package gauss

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

func (p Primitive) normCoeff() float64 {
	return math.Pow(2*p.Alpha/math.Pi, 0.75)
}

func dist2(a, b [3]float64) float64 {
	res := 0.0
	for i := range a {
		d := a[i] - b[i]
		res += d * d
	}
	return res
}

// productCenter is the center of the Gaussian product theorem:
// (a1*A + a2*B) / (a1 + a2).
func productCenter(a1, a2 float64, v1, v2 [3]float64) [3]float64 {
	var res [3]float64
	for i := range res {
		res[i] = (a1*v1[i] + a2*v2[i]) / (a1 + a2)
	}
	return res
}

// boys evaluates the Boys function F_n(x) through the regularized lower
// incomplete gamma function.
func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2.0 * math.Pow(x, nf+0.5))
}

// OverlapMatrix computes S_mn = <m|n> over the contracted shells.
func OverlapMatrix(shells []Shell) *mat.SymDense {
	n := len(shells)
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for _, a := range shells[i].Prims {
				for _, b := range shells[j].Prims {
					p := a.Alpha + b.Alpha
					q := a.Alpha * b.Alpha / p
					norm := a.normCoeff() * b.normCoeff()
					sum += norm * a.Coeff * b.Coeff *
						math.Exp(-q*dist2(a.Center, b.Center)) * math.Pow(math.Pi/p, 1.5)
				}
			}
			res.SetSym(i, j, sum)
		}
	}
	return res
}

// KineticMatrix computes T_mn = <m|-0.5*laplacian|n>.
func KineticMatrix(shells []Shell) *mat.SymDense {
	n := len(shells)
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for _, a := range shells[i].Prims {
				for _, b := range shells[j].Prims {
					p := a.Alpha + b.Alpha
					q := a.Alpha * b.Alpha / p
					norm := a.normCoeff() * b.normCoeff()
					s := norm * a.Coeff * b.Coeff *
						math.Exp(-q*dist2(a.Center, b.Center)) * math.Pow(math.Pi/p, 1.5)

					pc := productCenter(a.Alpha, b.Alpha, a.Center, b.Center)
					pg2 := dist2(pc, b.Center)

					sum += 3 * b.Alpha * s
					sum -= 2 * b.Alpha * b.Alpha * s * (pg2 + 1.5/p)
				}
			}
			res.SetSym(i, j, sum)
		}
	}
	return res
}

// NuclearMatrix computes the electron-nucleus attraction
// V_mn = -sum_A Z_A <m|1/r_A|n>.
func NuclearMatrix(shells []Shell, atoms []Atom) *mat.SymDense {
	n := len(shells)
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for _, at := range atoms {
				for _, a := range shells[i].Prims {
					for _, b := range shells[j].Prims {
						p := a.Alpha + b.Alpha
						q := a.Alpha * b.Alpha / p
						norm := a.normCoeff() * b.normCoeff()

						pc := productCenter(a.Alpha, b.Alpha, a.Center, b.Center)
						pg2 := dist2(pc, at.Center)

						sum += -float64(at.Z) * norm * a.Coeff * b.Coeff *
							math.Exp(-q*dist2(a.Center, b.Center)) *
							(2.0 * math.Pi / p) * boys(p*pg2, 0)
					}
				}
			}
			res.SetSym(i, j, sum)
		}
	}
	return res
}

// ERI holds the two-electron repulsion tensor (ij|kl) in chemists'
// notation, stored flat.
type ERI struct {
	n int
	v []float64
}

func (e *ERI) At(i, j, k, l int) float64 {
	return e.v[((i*e.n+j)*e.n+k)*e.n+l]
}

// TwoElectron computes the full repulsion tensor over the shells.
func TwoElectron(shells []Shell) *ERI {
	n := len(shells)
	e := &ERI{n: n, v: make([]float64, n*n*n*n)}
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					sum := 0.0
					for _, pi := range shells[i].Prims {
						for _, pj := range shells[j].Prims {
							for _, pk := range shells[k].Prims {
								for _, pl := range shells[l].Prims {
									norm := pi.normCoeff() * pj.normCoeff() * pk.normCoeff() * pl.normCoeff()
									cc := pi.Coeff * pj.Coeff * pk.Coeff * pl.Coeff

									pij := pi.Alpha + pj.Alpha
									pkl := pk.Alpha + pl.Alpha
									cij := productCenter(pi.Alpha, pj.Alpha, pi.Center, pj.Center)
									ckl := productCenter(pk.Alpha, pl.Alpha, pk.Center, pl.Center)
									denom := 1.0/pij + 1.0/pkl

									qij := pi.Alpha * pj.Alpha / pij
									qkl := pk.Alpha * pl.Alpha / pkl

									term := 2.0 * math.Pi * math.Pi / (pij * pkl) *
										math.Sqrt(math.Pi/(pij+pkl)) *
										math.Exp(-qij*dist2(pi.Center, pj.Center)) *
										math.Exp(-qkl*dist2(pk.Center, pl.Center))

									sum += norm * cc * term * boys(dist2(cij, ckl)/denom, 0)
								}
							}
						}
					}
					e.v[idx] = sum
					idx++
				}
			}
		}
	}
	return e
}

// NuclearRepulsion computes the pairwise nucleus-nucleus energy.
func NuclearRepulsion(atoms []Atom) float64 {
	res := 0.0
	for i := range atoms {
		for j := 0; j < i; j++ {
			r := math.Sqrt(dist2(atoms[i].Center, atoms[j].Center))
			res += float64(atoms[i].Z) * float64(atoms[j].Z) / r
		}
	}
	return res
}
