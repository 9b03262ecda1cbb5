// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/diim/iim"
	"github.com/katalvlaran/diim/matrix"
)

// CascadeSheet is the sheet name used for cascade tables.
const CascadeSheet = "Cascade"

// CascadeOption configures Cascade via functional arguments. An invalid
// option is recorded and surfaced as iim.ErrInvalidConfig when Cascade runs.
type CascadeOption func(*cascadeOptions)

type cascadeOptions struct {
	ctx       context.Context
	threshold float64
	maxDepth  int
	onVisit   func(sector string, depth int) error
	err       error
}

func defaultCascadeOptions() cascadeOptions {
	return cascadeOptions{
		ctx:     context.Background(),
		onVisit: func(string, int) error { return nil },
	}
}

// WithCascadeContext sets a context for cancellation.
func WithCascadeContext(ctx context.Context) CascadeOption {
	return func(o *cascadeOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithThreshold ignores links whose coefficient a*_ji is not strictly above t.
// The default of zero follows every non-zero dependency.
func WithThreshold(t float64) CascadeOption {
	return func(o *cascadeOptions) {
		if math.IsNaN(t) || t < 0 {
			o.err = fmt.Errorf("%w: cascade threshold %v", iim.ErrInvalidConfig, t)
			return
		}
		o.threshold = t
	}
}

// WithMaxDepth stops the cascade after d propagation orders. Zero means no limit.
func WithMaxDepth(d int) CascadeOption {
	return func(o *cascadeOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: cascade max depth %d", iim.ErrInvalidConfig, d)
			return
		}
		o.maxDepth = d
	}
}

// WithOnVisit registers a callback run for every reached sector. Returning an
// error aborts the cascade.
func WithOnVisit(fn func(sector string, depth int) error) CascadeOption {
	return func(o *cascadeOptions) {
		if fn != nil {
			o.onVisit = fn
		}
	}
}

// CascadeResult is the breadth-first propagation tree of a perturbation.
//   - Order: sectors in the order the cascade reaches them, start first.
//   - Depth: the propagation order at which each sector is first reached,
//     i.e. the smallest n with a non-zero path of length n in A*.
//   - Parent: the sector each one was reached through.
type CascadeResult struct {
	Start  string            `json:"start"`
	Order  []string          `json:"order"`
	Depth  map[string]int    `json:"depth"`
	Parent map[string]string `json:"parent"`
}

// PathTo reconstructs the dependency chain from the start sector to dest.
func (r *CascadeResult) PathTo(dest string) ([]string, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("cascade: %q is not reached from %q", dest, r.Start)
	}
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Table renders the result as rows [sector, depth, via], in reach order.
func (r *CascadeResult) Table() Table {
	t := Table{Name: CascadeSheet, Header: []string{"function", "depth", "via"}, Rows: make([][]any, len(r.Order))}
	for i, s := range r.Order {
		t.Rows[i] = []any{s, r.Depth[s], r.Parent[s]}
	}

	return t
}

type cascadeItem struct {
	idx   int
	depth int
}

// cascadeWalker holds the mutable traversal state.
type cascadeWalker struct {
	aStar   *matrix.Dense
	labels  []string
	opts    cascadeOptions
	queue   []cascadeItem
	visited []bool
	res     *CascadeResult
}

// Cascade walks the interdependency matrix breadth-first from start. Sector j
// is a neighbour of i when a*_ji exceeds the threshold: j depends on i, so an
// inoperability of i reaches j one order later. Neighbours are visited in
// sector order.
//
// Complexity:
//   - Time O(N²), Space O(N).
func Cascade(m *iim.Model, start string, opts ...CascadeOption) (*CascadeResult, error) {
	o := defaultCascadeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	idx, ok := m.IndexOf(start)
	if !ok {
		return nil, fmt.Errorf("cascade: %w: %q", iim.ErrUnknownSector, start)
	}

	n := m.Len()
	w := &cascadeWalker{
		aStar:   m.Interdependency(),
		labels:  m.Infrastructures(),
		opts:    o,
		queue:   make([]cascadeItem, 0, n),
		visited: make([]bool, n),
		res: &CascadeResult{
			Start:  start,
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	w.enqueue(idx, 0, -1)

	return w.res, w.loop()
}

func (w *cascadeWalker) enqueue(idx, depth, parent int) {
	w.visited[idx] = true
	label := w.labels[idx]
	w.res.Depth[label] = depth
	if parent >= 0 {
		w.res.Parent[label] = w.labels[parent]
	}
	w.queue = append(w.queue, cascadeItem{idx: idx, depth: depth})
}

func (w *cascadeWalker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.ctx.Err(); err != nil {
			return err
		}
		item := w.queue[0]
		w.queue = w.queue[1:]

		label := w.labels[item.idx]
		w.res.Order = append(w.res.Order, label)
		if err := w.opts.onVisit(label, item.depth); err != nil {
			return fmt.Errorf("cascade: visit %q: %w", label, err)
		}
		if err := w.enqueueDependents(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueDependents follows column item.idx of A*: every row j with a*_ji
// above the threshold depends on the current sector.
func (w *cascadeWalker) enqueueDependents(item cascadeItem) error {
	next := item.depth + 1
	if w.opts.maxDepth > 0 && next > w.opts.maxDepth {
		return nil
	}
	for j := range w.labels {
		if w.visited[j] {
			continue
		}
		v, err := w.aStar.At(j, item.idx)
		if err != nil {
			return fmt.Errorf("cascade: %w", err)
		}
		if v > w.opts.threshold {
			w.enqueue(j, next, item.idx)
		}
	}

	return nil
}
