// precision.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package scf

import "goscf/internal/operator"

// Schedule derives the working precision for the next iteration from
// the orbital error observed at the end of the previous one. Precision
// tightens with the error but stays within [Floor, Start]; Start is the
// coarse entry precision, Floor the tightest the run will ever request.
type Schedule struct {
	Start float64
	Floor float64
}

// Next maps an orbital error to a working precision. Pure and monotone:
// a smaller error never yields a coarser precision, and the result
// never leaves [Floor, Start]. A negative error (no update yet) yields
// the starting precision.
func (s Schedule) Next(err float64) float64 {
	if s.Start < 0 || s.Floor < 0 || s.Floor > s.Start {
		panic(operator.ErrPrecision)
	}
	if err < 0 {
		return s.Start
	}
	p := err / 100
	if p > s.Start {
		return s.Start
	}
	if p < s.Floor {
		return s.Floor
	}
	return p
}
