// system.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package gauss

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"goscf/internal/operator"
	"goscf/internal/orbital"
)

// System is a closed-shell molecule over a contracted-Gaussian basis,
// with all integrals precomputed. It assembles the operator aggregates
// the SCF engine drives; the two-electron operators read the live
// orbitals through swappable references.
type System struct {
	atoms  []Atom
	shells []Shell

	s   *mat.SymDense
	t   *mat.SymDense
	v   *mat.SymDense
	eri *ERI
	enn float64

	nocc int

	phiRef     *orbital.Ref
	phiNextRef *orbital.Ref
	log        *zap.Logger
}

// NewSystem builds the integral tables for the atoms in the named basis.
func NewSystem(atoms []Atom, basis string, log *zap.Logger) (*System, error) {
	if log == nil {
		log = zap.NewNop()
	}
	shells, err := BasisFor(basis, atoms)
	if err != nil {
		return nil, err
	}

	nelec := 0
	for _, a := range atoms {
		nelec += a.Z
	}
	if nelec%2 != 0 {
		return nil, fmt.Errorf("gauss: %d electrons, closed-shell systems only", nelec)
	}

	sys := &System{
		atoms:      atoms,
		shells:     shells,
		s:          OverlapMatrix(shells),
		t:          KineticMatrix(shells),
		v:          NuclearMatrix(shells, atoms),
		eri:        TwoElectron(shells),
		enn:        NuclearRepulsion(atoms),
		nocc:       nelec / 2,
		phiRef:     orbital.NewRef(nil),
		phiNextRef: orbital.NewRef(nil),
		log:        log,
	}
	log.Info("molecular system",
		zap.Int("atoms", len(atoms)),
		zap.Int("shells", len(shells)),
		zap.Int("electrons", nelec),
		zap.String("basis", basis),
		zap.Float64("nuclear_repulsion", sys.enn),
	)
	return sys, nil
}

func (sys *System) NOcc() int              { return sys.nocc }
func (sys *System) NBasis() int            { return len(sys.shells) }
func (sys *System) Overlap() *mat.SymDense { return sys.s }
func (sys *System) PhiRef() *orbital.Ref   { return sys.phiRef }
func (sys *System) NextRef() *orbital.Ref  { return sys.phiNextRef }
func (sys *System) NuclearEnergy() float64 { return sys.enn }

// InitialGuess diagonalizes the core Hamiltonian T+V in the Löwdin
// orthogonalized basis and occupies the lowest levels. Returns the
// occupied orbitals and their Fock matrix (diagonal, core eigenvalues).
func (sys *System) InitialGuess() (*orbital.Set, *mat.Dense) {
	n := sys.NBasis()

	var eig mat.EigenSym
	if ok := eig.Factorize(sys.s, true); !ok {
		panic("gauss: overlap eigendecomposition failed")
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)
	vals := eig.Values(nil)
	inv := make([]float64, n)
	for i, w := range vals {
		inv[i] = 1.0 / math.Sqrt(w)
	}
	var x mat.Dense // S^(-1/2)
	x.Mul(&ev, mat.NewDiagDense(n, inv))
	x.Mul(&x, ev.T())

	h := mat.NewDense(n, n, nil)
	h.Add(sys.t, sys.v)
	var hp mat.Dense
	hp.Mul(&x, h)
	hp.Mul(&hp, &x)

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(hp.At(i, j)+hp.At(j, i)))
		}
	}
	var core mat.EigenSym
	if ok := core.Factorize(sym, true); !ok {
		panic("gauss: core Hamiltonian eigendecomposition failed")
	}
	var cv mat.Dense
	core.VectorsTo(&cv)
	var c mat.Dense
	c.Mul(&x, &cv) // MO coefficients, columns ascending in energy

	eps := core.Values(nil)
	orbs := make([]*orbital.Orbital, sys.nocc)
	fmat := mat.NewDense(sys.nocc, sys.nocc, nil)
	for i := 0; i < sys.nocc; i++ {
		coef := make([]float64, n)
		mat.Col(coef, i, &c)
		o := orbital.New(orbital.Paired, -1, orbital.ReplicatedOwner())
		o.Re = orbital.NewMetricVector(coef, sys.s)
		orbs[i] = o
		fmat.Set(i, i, eps[i])
	}
	set := orbital.NewSet(orbs...)
	sys.phiRef.Set(set)
	return set, fmat
}

// density builds D_mn = sum_i occ_i c_mi c_ni from the referenced set.
func density(ref *orbital.Ref, n int) (*mat.Dense, error) {
	set := ref.Get()
	if set == nil {
		return nil, operator.ErrNotSetup
	}
	d := mat.NewDense(n, n, nil)
	for i := 0; i < set.Len(); i++ {
		v, ok := set.At(i).Re.(*orbital.Vector)
		if !ok {
			return nil, orbital.ErrFunctionKind
		}
		var outer mat.Dense
		outer.Outer(set.At(i).Occ(), v.Coeffs(), v.Coeffs())
		d.Add(d, &outer)
	}
	return d, nil
}

func (sys *System) coulomb(name string, ref *orbital.Ref) *operator.MatrixOperator {
	n := sys.NBasis()
	return operator.NewDeferredOperator(name, func(prec float64) (*mat.Dense, error) {
		d, err := density(ref, n)
		if err != nil {
			return nil, err
		}
		j := mat.NewDense(n, n, nil)
		for m := 0; m < n; m++ {
			for nu := 0; nu < n; nu++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					for l := 0; l < n; l++ {
						sum += d.At(k, l) * sys.eri.At(m, nu, k, l)
					}
				}
				j.Set(m, nu, sum)
			}
		}
		return j, nil
	}).WithMetric(sys.s)
}

func (sys *System) exchange(name string, ref *orbital.Ref) *operator.MatrixOperator {
	n := sys.NBasis()
	return operator.NewDeferredOperator(name, func(prec float64) (*mat.Dense, error) {
		d, err := density(ref, n)
		if err != nil {
			return nil, err
		}
		k := mat.NewDense(n, n, nil)
		for m := 0; m < n; m++ {
			for nu := 0; nu < n; nu++ {
				sum := 0.0
				for a := 0; a < n; a++ {
					for b := 0; b < n; b++ {
						sum += d.At(a, b) * sys.eri.At(m, b, a, nu)
					}
				}
				k.Set(m, nu, -0.5*sum)
			}
		}
		return k, nil
	}).WithMetric(sys.s)
}

// Fock assembles the operator aggregate bound to the current iterate.
func (sys *System) Fock() *operator.Fock {
	return &operator.Fock{
		Kinetic:          operator.NewMatrixOperator("kinetic", sys.t).WithMetric(sys.s),
		Nuclear:          operator.NewMatrixOperator("nuclear", sys.v).WithMetric(sys.s),
		Coulomb:          sys.coulomb("coulomb", sys.phiRef),
		Exchange:         sys.exchange("exchange", sys.phiRef),
		NuclearRepulsion: sys.enn,
	}
}

// FockNext assembles the aggregate bound to the next iterate, used by
// the Fock matrix update engine.
func (sys *System) FockNext() *operator.Fock {
	return &operator.Fock{
		Kinetic:          operator.NewMatrixOperator("kinetic", sys.t).WithMetric(sys.s),
		Nuclear:          operator.NewMatrixOperator("nuclear", sys.v).WithMetric(sys.s),
		Coulomb:          sys.coulomb("coulomb_next", sys.phiNextRef),
		Exchange:         sys.exchange("exchange_next", sys.phiNextRef),
		NuclearRepulsion: sys.enn,
	}
}

// Helmholtz builds the kinetic-part preconditioner over the basis.
func (sys *System) Helmholtz(pool *orbital.Pool) *operator.Helmholtz {
	return operator.NewHelmholtz(operator.MatrixResolventFactory(sys.t, sys.s), pool)
}

// InteractionEnergy is the electrostatic nucleus-nucleus energy between
// this system and external point charges.
func (sys *System) InteractionEnergy(ext []Atom) float64 {
	res := 0.0
	for _, a := range sys.atoms {
		for _, b := range ext {
			r := math.Sqrt(dist2(a.Center, b.Center))
			if r < 1e-10 {
				sys.log.Warn("coincident nuclei in interaction energy",
					zap.String("system", a.Symbol), zap.String("external", b.Symbol))
				continue
			}
			res += float64(a.Z) * float64(b.Z) / r
		}
	}
	return res
}
