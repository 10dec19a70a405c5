// config_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h2Input = `
molecule:
  atoms:
    - symbol: H
      xyz: [0.0, 0.0, 0.0]
    - symbol: H
      xyz: [1.4, 0.0, 0.0]
  basis: sto-3g
scf:
  max_iter: 20
  orbital_thrs: 1.0e-6
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(h2Input))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.SCF.MaxIter)
	assert.Equal(t, 1e-6, cfg.SCF.OrbitalThrs)
	assert.Equal(t, -1.0, cfg.SCF.PropertyThrs, "default")
	assert.Equal(t, 1e-4, cfg.SCF.StartPrec, "default")
	assert.Equal(t, "incremental", cfg.SCF.Updater, "default")
	assert.Equal(t, "sto-3g", cfg.Molecule.Basis)
	require.Len(t, cfg.Molecule.Atoms, 2)
	assert.Equal(t, 1.4, cfg.Molecule.Atoms[1].XYZ[0])
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h2.yaml")
	require.NoError(t, os.WriteFile(path, []byte(h2Input), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Atoms(), 2)
	assert.Equal(t, 1, cfg.Atoms()[0].Z)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(h2Input + "\n  typo_field: 1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Parse([]byte(h2Input))
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no atoms", func(c *Config) { c.Molecule.Atoms = nil }},
		{"bad element", func(c *Config) { c.Molecule.Atoms[0].Symbol = "Xx" }},
		{"zero max_iter", func(c *Config) { c.SCF.MaxIter = 0 }},
		{"negative start_prec", func(c *Config) { c.SCF.StartPrec = -1 }},
		{"inverted precisions", func(c *Config) { c.SCF.FinalPrec = 1; c.SCF.StartPrec = 1e-4 }},
		{"bad updater", func(c *Config) { c.SCF.Updater = "magic" }},
		{"negative kain", func(c *Config) { c.SCF.KAIN = -1 }},
		{"unbounded blind run", func(c *Config) {
			c.SCF.MaxIter = -1
			c.SCF.OrbitalThrs = -1
			c.SCF.PropertyThrs = -1
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}

	assert.NoError(t, valid().validate())
}
