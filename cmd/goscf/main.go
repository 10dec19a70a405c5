// main.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"goscf/internal/config"
	"goscf/internal/gauss"
	"goscf/internal/orbital"
	"goscf/internal/plot"
	"goscf/internal/report"
	"goscf/internal/scf"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "goscf",
		Short:         "Self-consistent field optimizer for molecular orbitals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "run <input.yaml>",
		Short: "Run an SCF calculation from a YAML input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func run(input string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(input)
	if err != nil {
		return err
	}

	sys, err := gauss.NewSystem(cfg.Atoms(), cfg.Molecule.Basis, log)
	if err != nil {
		return err
	}

	pool := orbital.NewPool(runtime.GOMAXPROCS(0))
	phi, fmat := sys.InitialGuess()
	pool.Distribute(phi)

	var updater scf.Updater
	switch cfg.SCF.Updater {
	case "direct":
		du := &scf.DirectUpdater{FockNext: sys.FockNext(), PhiNextRef: sys.NextRef()}
		if cfg.SCF.KAIN > 0 {
			du.Accel = scf.NewKAIN(cfg.SCF.KAIN)
		}
		updater = du
	default:
		updater = &scf.IncrementalUpdater{FockNext: sys.FockNext(), PhiNextRef: sys.NextRef()}
	}

	solver := scf.New(scf.Options{
		MaxIter:      cfg.SCF.MaxIter,
		OrbitalThrs:  cfg.SCF.OrbitalThrs,
		PropertyThrs: cfg.SCF.PropertyThrs,
		Precision:    scf.Schedule{Start: cfg.SCF.StartPrec, Floor: cfg.SCF.FinalPrec},
		Canonical:    !cfg.SCF.Localize,
	}, sys.Fock(), sys.Helmholtz(pool), updater,
		scf.WithPool(pool),
		scf.WithLogger(log),
		scf.WithCurrentRef(sys.PhiRef()),
	)

	res := solver.Optimize(phi, fmat)

	if cfg.Output.JSON != "" {
		if err := report.WriteFile(cfg.Output.JSON, res); err != nil {
			return err
		}
	} else if err := report.Write(os.Stdout, res); err != nil {
		return err
	}
	if cfg.Output.Plot != "" {
		if err := plot.Convergence(res, cfg.Output.Plot); err != nil {
			return err
		}
	}

	if !res.Converged {
		return fmt.Errorf("scf not converged after %d cycles", len(res.Cycles))
	}
	return nil
}
