// convergence.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package scf

import "math"

// History accumulates the per-iteration error and property sequences.
// Append-only; read for termination accounting and reporting.
type History struct {
	OrbErr   []float64 // max per-orbital residual norm
	TotErr   []float64 // Euclidean norm of the residual vector
	Property []float64 // scalar property (total energy), one per cycle
}

func (h *History) PushError(orbErr, totErr float64) {
	h.OrbErr = append(h.OrbErr, orbErr)
	h.TotErr = append(h.TotErr, totErr)
}

func (h *History) PushProperty(p float64) {
	h.Property = append(h.Property, p)
}

// PropertyError returns the magnitude of the last property update, or
// 1.0 before two cycles have completed.
func (h *History) PropertyError() float64 {
	n := len(h.Property)
	if n < 2 {
		return 1.0
	}
	return math.Abs(h.Property[n-1] - h.Property[n-2])
}

// PropertyUpdate returns the signed last property change; before two
// cycles it returns the property itself.
func (h *History) PropertyUpdate() float64 {
	n := len(h.Property)
	if n == 0 {
		return 0
	}
	if n < 2 {
		return h.Property[0]
	}
	return h.Property[n-1] - h.Property[n-2]
}

// Converged evaluates the termination predicate: both the orbital error
// and the property error must be below their thresholds. A negative
// threshold disables that criterion; with both disabled the run never
// converges and exhausts the iteration cap. Stateless in its inputs.
func Converged(orbErr, propErr, orbThrs, propThrs float64) bool {
	if orbThrs < 0 && propThrs < 0 {
		return false
	}
	if orbThrs >= 0 && orbErr > orbThrs {
		return false
	}
	if propThrs >= 0 && propErr > propThrs {
		return false
	}
	return true
}
