// vector.go --  This file is part of the goscf project.
//
//	goscf is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
// ------------------------------------------------
package orbital

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector is a Function realized as a coefficient vector over a fixed
// basis. A non-orthogonal basis carries its overlap metric, so that
// inner products read cᵀ·S·c.
type Vector struct {
	coef   *mat.VecDense
	metric mat.Symmetric
}

// NewVector wraps a coefficient vector over an orthonormal basis.
func NewVector(coef []float64) *Vector {
	return &Vector{coef: mat.NewVecDense(len(coef), coef)}
}

// NewMetricVector wraps a coefficient vector over a basis with overlap
// matrix metric.
func NewMetricVector(coef []float64, metric mat.Symmetric) *Vector {
	v := NewVector(coef)
	v.metric = metric
	return v
}

// Coeffs exposes the raw coefficient vector.
func (v *Vector) Coeffs() *mat.VecDense { return v.coef }

// Metric returns the basis overlap matrix, or nil for an orthonormal basis.
func (v *Vector) Metric() mat.Symmetric { return v.metric }

// Wrap returns a new vector over the same basis (and metric) as v.
func (v *Vector) Wrap(coef *mat.VecDense) *Vector {
	return &Vector{coef: coef, metric: v.metric}
}

func (v *Vector) Clone() Function {
	c := mat.NewVecDense(v.coef.Len(), nil)
	c.CopyVec(v.coef)
	return &Vector{coef: c, metric: v.metric}
}

func (v *Vector) Scale(a float64) {
	v.coef.ScaleVec(a, v.coef)
}

func (v *Vector) AddScaled(a float64, f Function) {
	w := mustVector(f)
	if w.coef.Len() != v.coef.Len() {
		panic(ErrSizeMismatch)
	}
	v.coef.AddScaledVec(v.coef, a, w.coef)
}

func (v *Vector) Dot(f Function) float64 {
	w := mustVector(f)
	if w.coef.Len() != v.coef.Len() {
		panic(ErrSizeMismatch)
	}
	if v.metric == nil {
		return mat.Dot(v.coef, w.coef)
	}
	return mat.Inner(v.coef, v.metric, w.coef)
}

func (v *Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func mustVector(f Function) *Vector {
	w, ok := f.(*Vector)
	if !ok {
		panic(ErrFunctionKind)
	}
	return w
}
