// convergence_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package scf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscf/internal/operator"
)

func TestConvergedPredicate(t *testing.T) {
	cases := []struct {
		name                               string
		orbErr, propErr, orbThrs, propThrs float64
		want                               bool
	}{
		{"both below", 1e-5, 1e-7, 1e-4, 1e-6, true},
		{"orbital above", 1e-3, 1e-7, 1e-4, 1e-6, false},
		{"property above", 1e-5, 1e-5, 1e-4, 1e-6, false},
		{"orbital disabled", 10, 1e-7, -1, 1e-6, true},
		{"property disabled", 1e-5, 10, 1e-4, -1, true},
		{"both disabled", 0, 0, -1, -1, false},
		{"exactly at threshold", 1e-4, 1e-6, 1e-4, 1e-6, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Converged(c.orbErr, c.propErr, c.orbThrs, c.propThrs))
		})
	}
}

func TestConvergedIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, Converged(1e-5, 1e-7, 1e-4, 1e-6))
	}
}

func TestHistoryPropertyError(t *testing.T) {
	var h History
	assert.Equal(t, 1.0, h.PropertyError())

	h.PushProperty(-1.0)
	assert.Equal(t, 1.0, h.PropertyError(), "one cycle is not enough for an update")
	assert.Equal(t, -1.0, h.PropertyUpdate())

	h.PushProperty(-1.1)
	assert.InDelta(t, 0.1, h.PropertyError(), 1e-14)
	assert.InDelta(t, -0.1, h.PropertyUpdate(), 1e-14)
}

func TestScheduleNext(t *testing.T) {
	s := Schedule{Start: 1e-3, Floor: 1e-6}

	assert.Equal(t, 1e-3, s.Next(-1), "no error yet starts coarse")
	assert.Equal(t, 1e-3, s.Next(10), "clamped at the start precision")
	assert.Equal(t, 1e-6, s.Next(1e-9), "clamped at the floor")
	assert.InDelta(t, 1e-5, s.Next(1e-3), 1e-18)
}

func TestScheduleMonotone(t *testing.T) {
	s := Schedule{Start: 1e-2, Floor: 1e-7}
	errs := []float64{1, 1e-1, 1e-2, 1e-3, 1e-4, 1e-5, 1e-6, 1e-7}
	prev := s.Next(errs[0])
	for _, e := range errs[1:] {
		cur := s.Next(e)
		require.LessOrEqual(t, cur, prev, "smaller error must not loosen precision")
		assert.GreaterOrEqual(t, cur, s.Floor)
		assert.LessOrEqual(t, cur, s.Start)
		prev = cur
	}
}

func TestScheduleInvalid(t *testing.T) {
	assert.PanicsWithValue(t, operator.ErrPrecision, func() {
		Schedule{Start: 1e-6, Floor: 1e-3}.Next(0.1)
	})
	assert.PanicsWithValue(t, operator.ErrPrecision, func() {
		Schedule{Start: -1, Floor: 0}.Next(0.1)
	})
}
