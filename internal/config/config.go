// config.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------

// Package config loads and validates the YAML calculation input.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"goscf/internal/gauss"
)

// AtomSpec is one nucleus in the input geometry, coordinates in bohr.
type AtomSpec struct {
	Symbol string     `yaml:"symbol"`
	XYZ    [3]float64 `yaml:"xyz"`
}

// Molecule describes the system to compute.
type Molecule struct {
	Atoms []AtomSpec `yaml:"atoms"`
	Basis string     `yaml:"basis"`
}

// SCF collects the iteration controls. Negative thresholds disable the
// corresponding convergence criterion.
type SCF struct {
	MaxIter      int     `yaml:"max_iter"`
	OrbitalThrs  float64 `yaml:"orbital_thrs"`
	PropertyThrs float64 `yaml:"property_thrs"`
	StartPrec    float64 `yaml:"start_prec"`
	FinalPrec    float64 `yaml:"final_prec"`
	KAIN         int     `yaml:"kain"`
	Localize     bool    `yaml:"localize"`
	Updater      string  `yaml:"updater"`
}

// Output selects the artifacts written after the run.
type Output struct {
	JSON string `yaml:"json"`
	Plot string `yaml:"plot"`
}

type Config struct {
	Molecule Molecule `yaml:"molecule"`
	SCF      SCF      `yaml:"scf"`
	Output   Output   `yaml:"output"`
}

// Default returns the configuration used when the input omits a field.
func Default() Config {
	return Config{
		Molecule: Molecule{Basis: "sto-3g"},
		SCF: SCF{
			MaxIter:      30,
			OrbitalThrs:  1e-5,
			PropertyThrs: -1,
			StartPrec:    1e-4,
			FinalPrec:    1e-7,
			KAIN:         5,
			Updater:      "incremental",
		},
	}
}

// Load reads, decodes and validates a configuration file. Missing
// fields fall back to the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Molecule.Atoms) == 0 {
		return fmt.Errorf("config: no atoms given")
	}
	for _, a := range c.Molecule.Atoms {
		if gauss.AtomicNumber(a.Symbol) == 0 {
			return fmt.Errorf("config: unknown element %q", a.Symbol)
		}
	}
	if c.SCF.MaxIter == 0 {
		return fmt.Errorf("config: max_iter must be nonzero (negative runs to convergence)")
	}
	if c.SCF.StartPrec <= 0 || c.SCF.FinalPrec <= 0 {
		return fmt.Errorf("config: precisions must be positive")
	}
	if c.SCF.FinalPrec > c.SCF.StartPrec {
		return fmt.Errorf("config: final_prec %g coarser than start_prec %g", c.SCF.FinalPrec, c.SCF.StartPrec)
	}
	if c.SCF.OrbitalThrs < 0 && c.SCF.PropertyThrs < 0 && c.SCF.MaxIter < 0 {
		return fmt.Errorf("config: unbounded run with every convergence criterion disabled")
	}
	switch c.SCF.Updater {
	case "incremental", "direct":
	default:
		return fmt.Errorf("config: unknown updater %q", c.SCF.Updater)
	}
	if c.SCF.KAIN < 0 {
		return fmt.Errorf("config: kain history must not be negative")
	}
	return nil
}

// Atoms converts the geometry into the integral engine's form.
func (c Config) Atoms() []gauss.Atom {
	out := make([]gauss.Atom, len(c.Molecule.Atoms))
	for i, a := range c.Molecule.Atoms {
		out[i] = gauss.Atom{
			Z:      gauss.AtomicNumber(a.Symbol),
			Symbol: a.Symbol,
			Center: a.XYZ,
		}
	}
	return out
}
