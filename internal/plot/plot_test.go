// plot_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscf/internal/scf"
)

func TestConvergenceWritesImage(t *testing.T) {
	res := scf.Result{Cycles: []scf.Cycle{
		{Iter: 1, OrbitalResidual: 0.2},
		{Iter: 2, OrbitalResidual: 0.01},
		{Iter: 3, OrbitalResidual: 3e-4},
	}}
	path := filepath.Join(t.TempDir(), "conv.png")
	require.NoError(t, Convergence(res, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConvergenceNoData(t *testing.T) {
	res := scf.Result{Cycles: []scf.Cycle{{Iter: 1, OrbitalResidual: 0}}}
	err := Convergence(res, filepath.Join(t.TempDir(), "conv.png"))
	assert.Error(t, err)
}
