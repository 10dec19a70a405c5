// plot.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package plot renders the convergence history of a finished run.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"goscf/internal/scf"
)

// Convergence plots the orbital residual against the iteration number
// on a logarithmic axis and saves the image to path. The format follows
// the file extension (png, svg, pdf, ...).
func Convergence(res scf.Result, path string) error {
	pts := make(plotter.XYs, 0, len(res.Cycles))
	for _, c := range res.Cycles {
		if c.OrbitalResidual <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(c.Iter), Y: c.OrbitalResidual})
	}
	if len(pts) == 0 {
		return fmt.Errorf("plot: no positive residuals to plot")
	}

	p := plot.New()
	p.Title.Text = "SCF convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "orbital residual"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}
