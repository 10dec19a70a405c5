// orbital.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package orbital holds the single-particle wavefunction data model and
// the dense algebra on ordered orbital collections.
package orbital

import (
	"errors"
	"math"
)

var (
	// ErrSpin flags an orbital constructed with an unknown spin tag.
	ErrSpin = errors.New("orbital: invalid spin")
	// ErrSizeMismatch flags an orbital-count mismatch between two sets.
	// This is a caller error, not a numerical condition.
	ErrSizeMismatch = errors.New("orbital: orbital count mismatch")
	// ErrFunctionKind flags mixing incompatible Function implementations.
	ErrFunctionKind = errors.New("orbital: incompatible function kinds")
	// ErrOwner flags a worker rank outside the pool.
	ErrOwner = errors.New("orbital: invalid owner rank")
)

// Spin labels the electron spin of an orbital.
type Spin int

const (
	Paired Spin = iota
	Alpha
	Beta
)

// DefaultOccupation returns the occupation implied by the spin:
// two electrons for a paired orbital, one otherwise.
func (s Spin) DefaultOccupation() float64 {
	if s == Paired {
		return 2
	}
	return 1
}

func (s Spin) String() string {
	switch s {
	case Paired:
		return "p"
	case Alpha:
		return "a"
	case Beta:
		return "b"
	}
	return "u"
}

// Owner tags which worker holds an orbital's numerical representation.
// The zero value is the replicated tag: every worker holds a copy.
type Owner struct {
	rank int
}

// OwnedBy tags an orbital as exclusively owned by one worker.
func OwnedBy(rank int) Owner {
	if rank < 0 {
		panic(ErrOwner)
	}
	return Owner{rank: rank + 1}
}

// ReplicatedOwner tags an orbital as shared across all workers.
func ReplicatedOwner() Owner { return Owner{} }

// IsReplicated reports whether the orbital is shared across all workers.
func (o Owner) IsReplicated() bool { return o.rank == 0 }

// Rank returns the owning worker, or ok=false for a replicated orbital.
func (o Owner) Rank() (int, bool) {
	if o.IsReplicated() {
		return 0, false
	}
	return o.rank - 1, true
}

// Function is an opaque numerical function over 3D space. The SCF engine
// only combines, scales and contracts functions; the representation
// (adaptive tree, basis expansion, ...) is up to the implementation.
type Function interface {
	Clone() Function
	Scale(a float64)
	AddScaled(a float64, f Function)
	Dot(f Function) float64
	Norm() float64
}

// Orbital is a single-particle wavefunction with spin, occupation and
// ownership metadata. The imaginary part is absent for time-independent
// calculations.
type Orbital struct {
	Re, Im Function

	spin  Spin
	occ   float64
	owner Owner
	err   float64
}

// New creates an empty orbital. A negative occupation is defaulted from
// the spin (paired orbitals hold two electrons, alpha/beta one).
func New(spin Spin, occ float64, owner Owner) *Orbital {
	if spin < Paired || spin > Beta {
		panic(ErrSpin)
	}
	if occ < 0 {
		occ = spin.DefaultOccupation()
	}
	return &Orbital{spin: spin, occ: occ, owner: owner}
}

func (o *Orbital) Spin() Spin   { return o.spin }
func (o *Orbital) Occ() float64 { return o.occ }
func (o *Orbital) Owner() Owner { return o.owner }

// Error returns the residual norm recorded after the last orbital update.
func (o *Orbital) Error() float64 { return o.err }

func (o *Orbital) SetError(e float64) { o.err = e }

func (o *Orbital) HasReal() bool { return o.Re != nil }
func (o *Orbital) HasImag() bool { return o.Im != nil }

// ParamCopy returns an empty orbital carrying the same spin, occupation
// and ownership as the receiver.
func (o *Orbital) ParamCopy() *Orbital {
	return New(o.spin, o.occ, o.owner)
}

// Dot returns the real part of the inner product with p.
func (o *Orbital) Dot(p *Orbital) float64 {
	res := 0.0
	if o.HasReal() && p.HasReal() {
		res += o.Re.Dot(p.Re)
	}
	if o.HasImag() && p.HasImag() {
		res += o.Im.Dot(p.Im)
	}
	return res
}

// Norm returns the L2 norm over both components.
func (o *Orbital) Norm() float64 {
	sq := 0.0
	if o.HasReal() {
		n := o.Re.Norm()
		sq += n * n
	}
	if o.HasImag() {
		n := o.Im.Norm()
		sq += n * n
	}
	return math.Sqrt(sq)
}
