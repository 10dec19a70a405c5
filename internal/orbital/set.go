// set.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package orbital

// Set is an ordered collection of orbitals. The position of an orbital
// is its index into the Fock matrix, so the size and order are fixed
// for the duration of an SCF run; only the numerical representations
// are replaced between iterations.
type Set struct {
	orbs []*Orbital
}

func NewSet(orbs ...*Orbital) *Set {
	return &Set{orbs: orbs}
}

func (s *Set) Len() int { return len(s.orbs) }

func (s *Set) At(i int) *Orbital { return s.orbs[i] }

// ParamCopy returns a set of empty orbitals with the same metadata.
func (s *Set) ParamCopy() *Set {
	out := make([]*Orbital, len(s.orbs))
	for i, o := range s.orbs {
		out[i] = o.ParamCopy()
	}
	return NewSet(out...)
}

// Errors collects the per-orbital residual norms from the last update.
func (s *Set) Errors() []float64 {
	errs := make([]float64, len(s.orbs))
	for i, o := range s.orbs {
		errs[i] = o.Error()
	}
	return errs
}

func (s *Set) SetErrors(errs []float64) {
	if len(errs) != len(s.orbs) {
		panic(ErrSizeMismatch)
	}
	for i, o := range s.orbs {
		o.SetError(errs[i])
	}
}

// MaxError returns the largest per-orbital residual norm.
func (s *Set) MaxError() float64 {
	max := 0.0
	for _, o := range s.orbs {
		if o.Error() > max {
			max = o.Error()
		}
	}
	return max
}

// Occupations collects the orbital occupation numbers.
func (s *Set) Occupations() []float64 {
	occ := make([]float64, len(s.orbs))
	for i, o := range s.orbs {
		occ[i] = o.Occ()
	}
	return occ
}

// Ref is a swappable reference to a set. Operators that must follow the
// controller's current iterate (e.g. a Coulomb potential built from the
// live density) capture a Ref instead of a Set.
type Ref struct {
	s *Set
}

func NewRef(s *Set) *Ref { return &Ref{s: s} }

func (r *Ref) Get() *Set  { return r.s }
func (r *Ref) Set(s *Set) { r.s = s }
