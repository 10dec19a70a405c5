// pool_test.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package orbital

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDistribute(t *testing.T) {
	p := NewPool(2)
	s := coefSet([]float64{1}, []float64{2}, []float64{3}, []float64{4})
	p.Distribute(s)

	for i := 0; i < s.Len(); i++ {
		rank, ok := s.At(i).Owner().Rank()
		require.True(t, ok)
		assert.Equal(t, i%2, rank)
	}
}

func TestPoolSizeFloor(t *testing.T) {
	assert.Equal(t, 1, NewPool(0).Size())
	assert.Equal(t, 1, NewPool(-3).Size())
}

func TestForEachVisitsAll(t *testing.T) {
	p := NewPool(3)
	s := coefSet([]float64{1}, []float64{2}, []float64{3}, []float64{4}, []float64{5})
	p.Distribute(s)

	var mu sync.Mutex
	seen := make(map[int]bool)
	err := p.ForEach(s, func(i int, o *Orbital) error {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, s.Len())
}

func TestForEachPropagatesError(t *testing.T) {
	p := NewPool(2)
	s := coefSet([]float64{1}, []float64{2})
	p.Distribute(s)

	boom := errors.New("boom")
	err := p.ForEach(s, func(i int, o *Orbital) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestReduceOwnedRestoresOrder(t *testing.T) {
	p := NewPool(2)
	s := coefSet([]float64{1}, []float64{2}, []float64{3}, []float64{4})
	p.Distribute(s)

	// Worker 0 owns orbitals 0 and 2, worker 1 owns 1 and 3. The
	// reduction interleaves the partials back into set order.
	local := [][]float64{{0.1, 0.3}, {0.2, 0.05}}
	out := p.ReduceOwned(s, local)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.05}, out)
}

func TestReduceOwnedChecksShape(t *testing.T) {
	p := NewPool(2)
	s := coefSet([]float64{1}, []float64{2})
	p.Distribute(s)

	assert.PanicsWithValue(t, ErrSizeMismatch, func() {
		p.ReduceOwned(s, [][]float64{{1, 2}})
	})
	assert.PanicsWithValue(t, ErrSizeMismatch, func() {
		p.ReduceOwned(s, [][]float64{{}, {1}})
	})
	assert.PanicsWithValue(t, ErrSizeMismatch, func() {
		p.ReduceOwned(s, [][]float64{{1, 99}, {1}})
	})
}

func TestPoolNormsMatchesSerial(t *testing.T) {
	s := coefSet([]float64{3, 4}, []float64{1, 0}, []float64{0, 2})
	want := Norms(s)

	for _, size := range []int{1, 2, 3, 4} {
		p := NewPool(size)
		p.Distribute(s)
		assert.Equal(t, want, p.Norms(s), "pool size %d", size)
	}
}

func TestReplicatedComputedOnce(t *testing.T) {
	p := NewPool(3)
	s := coefSet([]float64{1}, []float64{2})
	// No Distribute: both orbitals stay replicated, computed by worker 0.

	var mu sync.Mutex
	count := 0
	err := p.ForEach(s, func(i int, o *Orbital) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
