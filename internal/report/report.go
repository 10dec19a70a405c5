// report.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package report serializes a finished optimization into the JSON
// output document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"goscf/internal/scf"
)

type solverReport struct {
	Converged     bool            `json:"converged"`
	Energy        float64         `json:"energy_total"`
	Terms         scf.EnergyTerms `json:"energy_terms"`
	OrbitalError  float64         `json:"orbital_error"`
	PropertyError float64         `json:"property_error"`
	WallTime      float64         `json:"wall_time_total"`
	Cycles        []scf.Cycle     `json:"cycles"`
}

type calculation struct {
	Solver solverReport `json:"scf_solver"`
}

type document struct {
	Calculation calculation `json:"scf_calculation"`
}

// Write renders the result as indented JSON.
func Write(w io.Writer, res scf.Result) error {
	doc := document{Calculation: calculation{Solver: solverReport{
		Converged:     res.Converged,
		Energy:        res.Energy,
		Terms:         res.Terms,
		OrbitalError:  res.OrbitalError,
		PropertyError: res.PropertyError,
		WallTime:      res.WallTime.Seconds(),
		Cycles:        res.Cycles,
	}}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WriteFile writes the JSON document to a file.
func WriteFile(path string, res scf.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()
	return Write(f, res)
}
