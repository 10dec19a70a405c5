// energy.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package scf drives an orbital set toward a fixed point of the Fock
// operator: Helmholtz preconditioning, incremental Fock-matrix updates,
// convergence accounting and history-based acceleration.
package scf

import "time"

// EnergyTerms is one snapshot of the component energies.
type EnergyTerms struct {
	Kinetic          float64 `json:"kinetic"`
	Nuclear          float64 `json:"nuclear_attraction"`
	Coulomb          float64 `json:"coulomb"`
	Exchange         float64 `json:"exchange"`
	XC               float64 `json:"exchange_correlation"`
	NuclearRepulsion float64 `json:"nuclear_repulsion"`
}

// Total sums the component energies.
func (t EnergyTerms) Total() float64 {
	return t.Kinetic + t.Nuclear + t.Coulomb + t.Exchange + t.XC + t.NuclearRepulsion
}

// Cycle records one completed SCF iteration for reporting.
type Cycle struct {
	Iter            int         `json:"iteration"`
	Terms           EnergyTerms `json:"energy_terms"`
	EnergyTotal     float64     `json:"energy_total"`
	EnergyUpdate    float64     `json:"energy_update"`
	OrbitalResidual float64     `json:"orbital_residual"`
	WallTime        float64     `json:"wall_time"`
}

// Result is the outcome of an optimization run. A run that hits the
// iteration cap without converging is still a completed run: it carries
// the best available orbitals, matrix and full history.
type Result struct {
	Converged bool
	Energy    float64
	Terms     EnergyTerms
	Cycles    []Cycle

	OrbitalError  float64
	PropertyError float64
	WallTime      time.Duration
}
