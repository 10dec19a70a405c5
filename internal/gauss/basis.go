// basis.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package gauss provides a contracted-Gaussian realization of the
// molecular system: basis sets, one- and two-electron integrals, and
// the operator aggregate consumed by the SCF engine.
package gauss

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Primitive is a single s-type Gaussian exp(-alpha*r^2) centered on an
// atom, entering a contraction with the given coefficient.
type Primitive struct {
	Alpha  float64
	Coeff  float64
	Center [3]float64
}

// Shell is one contracted basis function.
type Shell struct {
	Prims []Primitive
}

// Atom is a nucleus with charge Z at a position in bohr.
type Atom struct {
	Z      int
	Symbol string
	Center [3]float64
}

var symbols = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
}

// AtomicNumber resolves an element symbol, or 0 for an unknown one.
func AtomicNumber(symbol string) int {
	i := slices.IndexFunc(symbols, func(s string) bool {
		return strings.EqualFold(s, symbol)
	})
	return i + 1
}

// Contraction data for hydrogen. Exponents and coefficients from the
// EMSL basis set exchange.
var hydrogenSets = map[string][][][2]float64{
	"sto-3g": {
		{
			{3.425250914, 0.1543289673},
			{0.6239137298, 0.5353281423},
			{0.1688554040, 0.4446345422},
		},
	},
	"6-31g": {
		{
			{18.73113696, 0.03349460434},
			{2.825394365, 0.2347269535},
			{0.6401216923, 0.8137573261},
		},
		{
			{0.1612777588, 1.0},
		},
	},
}

// BasisFor expands the named basis set over the atoms. Shells are
// ordered atom by atom.
func BasisFor(name string, atoms []Atom) ([]Shell, error) {
	key := strings.ToLower(name)
	for _, a := range atoms {
		if a.Z != 1 {
			return nil, fmt.Errorf("gauss: no %s basis for element %s (Z=%d)", name, a.Symbol, a.Z)
		}
	}
	contractions, ok := hydrogenSets[key]
	if !ok {
		return nil, fmt.Errorf("gauss: unknown basis set %q", name)
	}

	var shells []Shell
	for _, a := range atoms {
		for _, contr := range contractions {
			sh := Shell{}
			for _, pg := range contr {
				sh.Prims = append(sh.Prims, Primitive{Alpha: pg[0], Coeff: pg[1], Center: a.Center})
			}
			shells = append(shells, sh)
		}
	}
	return shells, nil
}
