package simplex

import "gonum.org/v1/gonum/mat"

// workPool recycles dense elimination workspaces across branch-and-bound
// nodes. A pool belongs to a single solve call and is not safe for
// concurrent use; concurrent requests each get their own.
type workPool struct {
	dense []*mat.Dense
}

func newWorkPool() *workPool {
	return &workPool{dense: make([]*mat.Dense, 0, 4)}
}

// get returns a zeroed r x c matrix, reusing a pooled one when the
// dimensions match.
func (p *workPool) get(r, c int) *mat.Dense {
	for i, m := range p.dense {
		if mr, mc := m.Dims(); mr == r && mc == c {
			p.dense = append(p.dense[:i], p.dense[i+1:]...)
			m.Zero()
			return m
		}
	}
	return mat.NewDense(r, c, nil)
}

// put returns a matrix to the pool.
func (p *workPool) put(m *mat.Dense) {
	p.dense = append(p.dense, m)
}
