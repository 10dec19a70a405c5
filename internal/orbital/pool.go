// pool.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package orbital

import (
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed set of workers among which orbital ownership is
// distributed. Per-orbital numerical work runs in parallel across the
// owned orbitals; aggregation goes through ReduceOwned, after which
// every worker observes the identical full-length result.
type Pool struct {
	size int
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

func (p *Pool) Size() int { return p.size }

// Distribute assigns round-robin ownership over the pool's workers.
func (p *Pool) Distribute(s *Set) {
	for i := 0; i < s.Len(); i++ {
		s.At(i).owner = OwnedBy(i % p.size)
	}
}

// workerFor maps an orbital to the worker that computes for it.
// Replicated orbitals are computed by worker 0.
func (p *Pool) workerFor(o *Orbital) int {
	rank, ok := o.Owner().Rank()
	if !ok {
		return 0
	}
	return rank % p.size
}

// ForEach runs fn once per orbital, fanned out across the workers by
// ownership. It returns after every worker has finished; the first
// error wins.
func (p *Pool) ForEach(s *Set, fn func(i int, o *Orbital) error) error {
	var g errgroup.Group
	for w := 0; w < p.size; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < s.Len(); i++ {
				if p.workerFor(s.At(i)) != w {
					continue
				}
				if err := fn(i, s.At(i)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// ReduceOwned reassembles per-worker partial scalar vectors into a
// single vector in original orbital order. local[w] lists the values
// computed by worker w for its owned orbitals, in set order. The result
// is independent of the worker count and identical for every caller.
func (p *Pool) ReduceOwned(s *Set, local [][]float64) []float64 {
	if len(local) != p.size {
		panic(ErrSizeMismatch)
	}
	cursor := make([]int, p.size)
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		w := p.workerFor(s.At(i))
		if cursor[w] >= len(local[w]) {
			panic(ErrSizeMismatch)
		}
		out[i] = local[w][cursor[w]]
		cursor[w]++
	}
	for w := range cursor {
		if cursor[w] != len(local[w]) {
			panic(ErrSizeMismatch)
		}
	}
	return out
}

// Norms computes per-orbital norms in parallel across the pool and
// reduces the per-worker partial vectors into set order.
func (p *Pool) Norms(s *Set) []float64 {
	local := make([][]float64, p.size)
	var g errgroup.Group
	for w := 0; w < p.size; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < s.Len(); i++ {
				if p.workerFor(s.At(i)) != w {
					continue
				}
				local[w] = append(local[w], s.At(i).Norm())
			}
			return nil
		})
	}
	g.Wait() // no worker returns an error
	return p.ReduceOwned(s, local)
}
