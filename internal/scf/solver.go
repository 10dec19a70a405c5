// solver.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package scf

import (
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"goscf/internal/operator"
	"goscf/internal/orbital"
)

// Options is the immutable run configuration of a solver.
type Options struct {
	// MaxIter caps the iteration count; negative means run until the
	// convergence predicate is satisfied.
	MaxIter int
	// OrbitalThrs is the threshold on the max per-orbital residual
	// norm; negative disables the criterion.
	OrbitalThrs float64
	// PropertyThrs is the threshold on the energy update between
	// cycles; negative disables the criterion.
	PropertyThrs float64
	// Precision is the working-precision schedule.
	Precision Schedule
	// Canonical selects the canonical basis (Fock-diagonalizing) for
	// the pre- and post-loop rotations; otherwise orbitals are
	// localized. Inside the loop only Löwdin orthonormalization is
	// used either way.
	Canonical bool
}

// Solver drives the SCF fixed-point iteration. The Fock operator and
// Helmholtz preconditioner are borrowed collaborators: the solver
// toggles their setup/clear lifecycle but never owns them.
type Solver struct {
	opts    Options
	fock    *operator.Fock
	helm    *operator.Helmholtz
	updater Updater

	pool   *orbital.Pool
	phiRef *orbital.Ref
	log    *zap.Logger

	hist History
}

// Option adjusts optional solver collaborators.
type Option func(*Solver)

// WithPool distributes per-orbital work across a worker pool.
func WithPool(p *orbital.Pool) Option {
	return func(s *Solver) { s.pool = p }
}

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// WithCurrentRef keeps a shared reference pointed at the solver's
// current iterate, for operators built from the live density.
func WithCurrentRef(r *orbital.Ref) Option {
	return func(s *Solver) { s.phiRef = r }
}

// New builds a solver. The Fock operator, preconditioner and update
// strategy are required.
func New(opts Options, fock *operator.Fock, helm *operator.Helmholtz, up Updater, extra ...Option) *Solver {
	if fock == nil || helm == nil || up == nil {
		panic(operator.ErrNotSetup)
	}
	if opts.Precision.Start < 0 || opts.Precision.Floor < 0 || opts.Precision.Floor > opts.Precision.Start {
		panic(operator.ErrPrecision)
	}
	s := &Solver{opts: opts, fock: fock, helm: helm, updater: up, log: zap.NewNop()}
	for _, o := range extra {
		o(s)
	}
	return s
}

// History exposes the error and property sequences of the last run.
func (s *Solver) History() *History { return &s.hist }

// Optimize iterates phi and fmat to self-consistency. It returns a
// completed Result whether or not the predicate was satisfied within
// the iteration cap.
func (s *Solver) Optimize(phi *orbital.Set, fmat *mat.Dense) Result {
	start := time.Now()
	if r, c := fmat.Dims(); r != phi.Len() || c != phi.Len() {
		panic(orbital.ErrSizeMismatch)
	}

	s.hist = History{}
	phi, fmat = s.canonicalize(phi, fmat)
	s.publish(phi)

	cur := s.opts.Precision.Start
	errO := -1.0
	conv := false
	var cycles []Cycle

	for n := 1; n <= s.opts.MaxIter || s.opts.MaxIter < 0; n++ {
		t0 := time.Now()

		// 1. Working precision from the previous orbital error; the
		// running precision never loosens.
		if n > 1 {
			if next := s.opts.Precision.Next(errO); next < cur {
				cur = next
			}
		}

		// 2. Electronic energy at the current orbitals.
		if err := s.fock.Setup(cur); err != nil {
			panic(err)
		}
		terms := s.energyTerms(phi)
		energy := terms.Total()
		s.hist.PushProperty(energy)

		// 3-5. Helmholtz preconditioning of the orbital update.
		if err := s.helm.Setup(cur, diagonal(fmat)); err != nil {
			panic(err)
		}
		psi := s.helmholtzArgument(phi, fmat)
		phiNext := s.helm.Apply(psi)
		if s.pool != nil && s.pool.Size() > 1 {
			s.helm.Clear()
		}

		// 6. Orbital updates and reduced error vector.
		dPhi := orbital.Add(1, phiNext, -1, phi)
		errs := s.norms(dPhi)
		phi.SetErrors(errs)
		errO = floats.Max(errs)
		errT := floats.Norm(errs, 2)
		errP := s.hist.PropertyError()
		s.hist.PushError(errO, errT)

		// 7. Convergence predicate; the cycle always completes so the
		// orbitals and Fock matrix stay in lock-step.
		conv = Converged(errO, errP, s.opts.OrbitalThrs, s.opts.PropertyThrs)

		// 8. Next Fock matrix.
		it := &Iteration{
			Prec:    cur,
			Phi:     phi,
			PhiNext: phiNext,
			Delta:   dPhi,
			FMat:    fmat,
			Lambda:  s.helm.Lambda(),
			Fock:    s.fock,
		}
		fNext := s.updater.NextFock(it)
		s.fock.Clear()

		// 9. Symmetric re-orthonormalization of orbitals and matrix.
		rotated, u := orbital.Orthonormalize(it.PhiNext)
		phi = rotated
		fmat = orbital.Transform(u, fNext)
		s.publish(phi)

		cycles = append(cycles, Cycle{
			Iter:            n,
			Terms:           terms,
			EnergyTotal:     energy,
			EnergyUpdate:    s.hist.PropertyUpdate(),
			OrbitalResidual: errT,
			WallTime:        time.Since(t0).Seconds(),
		})
		s.log.Info("scf cycle",
			zap.Int("iter", n),
			zap.Float64("energy", energy),
			zap.Float64("orbital_error", errO),
			zap.Float64("total_error", errT),
			zap.Float64("residual_rms", rmsError(errs)),
			zap.Float64("precision", cur),
			zap.Bool("converged", conv),
		)

		// 10. Exit only after the full cycle.
		if conv {
			break
		}
	}

	// Terminal re-canonicalization, one order tighter than the last
	// working precision.
	final := cur / 10
	phi, fmat = s.canonicalize(phi, fmat)
	s.publish(phi)

	if err := s.fock.Setup(final); err != nil {
		panic(err)
	}
	terms := s.energyTerms(phi)
	s.fock.Clear()

	res := Result{
		Converged:     conv,
		Energy:        terms.Total(),
		Terms:         terms,
		Cycles:        cycles,
		OrbitalError:  errO,
		PropertyError: s.hist.PropertyError(),
		WallTime:      time.Since(start),
	}
	if conv {
		s.log.Info("scf converged", zap.Int("cycles", len(cycles)), zap.Float64("energy", res.Energy))
	} else {
		s.log.Warn("scf not converged", zap.Int("cycles", len(cycles)), zap.Float64("orbital_error", errO))
	}
	return res
}

// helmholtzArgument builds the right-hand side the resolvents act on:
// psi_i = (V phi)_i + sum_j (Lambda - F)_ij phi_j.
func (s *Solver) helmholtzArgument(phi *orbital.Set, fmat *mat.Dense) *orbital.Set {
	n := phi.Len()
	c := mat.NewDense(n, n, nil)
	c.Scale(-1, fmat)
	for i, l := range s.helm.Lambda() {
		c.Set(i, i, c.At(i, i)+l)
	}
	part := s.fock.ApplyPotential(phi)
	return orbital.Add(1, part, 1, orbital.Rotate(c, phi))
}

func (s *Solver) energyTerms(phi *orbital.Set) EnergyTerms {
	t := EnergyTerms{NuclearRepulsion: s.fock.NuclearRepulsion}
	if op := s.fock.Kinetic; op != nil {
		t.Kinetic = operator.Trace(op, phi)
	}
	if op := s.fock.Nuclear; op != nil {
		t.Nuclear = operator.Trace(op, phi)
	}
	if op := s.fock.Coulomb; op != nil {
		t.Coulomb = 0.5 * operator.Trace(op, phi)
	}
	if op := s.fock.Exchange; op != nil {
		t.Exchange = 0.5 * operator.Trace(op, phi)
	}
	if op := s.fock.XC; op != nil {
		t.XC = operator.Trace(op, phi)
	}
	return t
}

func (s *Solver) canonicalize(phi *orbital.Set, fmat *mat.Dense) (*orbital.Set, *mat.Dense) {
	if s.opts.Canonical {
		return orbital.Diagonalize(phi, fmat)
	}
	rotated, u := orbital.Localize(phi)
	return rotated, orbital.Transform(u, fmat)
}

func (s *Solver) norms(dPhi *orbital.Set) []float64 {
	if s.pool != nil {
		return s.pool.Norms(dPhi)
	}
	return orbital.Norms(dPhi)
}

func (s *Solver) publish(phi *orbital.Set) {
	if s.phiRef != nil {
		s.phiRef.Set(phi)
	}
}

// rmsError is the root-mean-square of the per-orbital residual norms.
func rmsError(errs []float64) float64 {
	sq := make([]float64, len(errs))
	for i, e := range errs {
		sq[i] = e * e
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

func diagonal(m *mat.Dense) []float64 {
	n, _ := m.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = m.At(i, i)
	}
	return out
}
