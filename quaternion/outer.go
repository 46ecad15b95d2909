package quaternion

import (
	"context"
	"sync"

	"github.com/pterm/pterm"
	"go.uber.org/atomic"

	"go.viam.com/texture/logging"
	"go.viam.com/texture/object3d"
	"go.viam.com/texture/utils"
	"go.viam.com/texture/vector"
)

// pairFunc writes the combination of one left and one right element into out.
type pairFunc func(out, left, right []float64)

// Outer returns the Hamilton product of every pair, shaped q.Shape() + other.Shape().
func (q *Quaternion) Outer(ctx context.Context, other *Quaternion, opts ...Option) (*Quaternion, error) {
	data, err := outer(ctx, q, other.Data(), other.Shape(), dim, hamilton, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return New(data, append(q.Shape(), other.Shape()...)...)
}

// OuterVector rotates every vector by every quaternion, shaped q.Shape() + v.Shape().
func (q *Quaternion) OuterVector(ctx context.Context, v *vector.Vector3D, opts ...Option) (*vector.Vector3D, error) {
	data, err := outer(ctx, q, v.Data(), v.Shape(), 3, rotate, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return vector.New(data, append(q.Shape(), v.Shape()...)...)
}

// OuterMiller is OuterVector for Miller vectors. The phase and coordinate format are kept.
func (q *Quaternion) OuterMiller(ctx context.Context, m *vector.Miller, opts ...Option) (*vector.Miller, error) {
	v, err := q.OuterVector(ctx, m.Vector(), opts...)
	if err != nil {
		return nil, err
	}
	return m.WithVector(v), nil
}

// OuterAny dispatches to Outer, OuterVector or OuterMiller on the type of other.
func (q *Quaternion) OuterAny(ctx context.Context, other interface{}, opts ...Option) (interface{}, error) {
	switch o := other.(type) {
	case *Quaternion:
		return q.Outer(ctx, o, opts...)
	case *vector.Vector3D:
		return q.OuterVector(ctx, o, opts...)
	case *vector.Miller:
		return q.OuterMiller(ctx, o, opts...)
	default:
		return nil, utils.NewUnsupportedOperandError("outer", other, "*Quaternion", "*vector.Vector3D", "*vector.Miller")
	}
}

func outer(
	ctx context.Context,
	q *Quaternion,
	right []float64,
	rightShape []int,
	cols int,
	fn pairFunc,
	o *options,
) ([]float64, error) {
	left := q.Data()
	n, m := q.Size(), object3d.ShapeSize(rightShape)
	out := make([]float64, n*m*cols)
	if !o.chunked {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				fn(out[(i*m+j)*cols:], left[i*dim:], right[j*cols:])
			}
		}
		return out, nil
	}

	leftBlocks := blocks(q.Shape(), o.chunkSize)
	rightBlocks := blocks(rightShape, o.chunkSize)
	total := len(leftBlocks) * len(rightBlocks)

	prog := newProgress(o, int64(total))
	defer prog.stop()

	err := utils.GroupWorkParallel(
		ctx,
		total,
		nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) error {
				lb := leftBlocks[workNum/len(rightBlocks)]
				rb := rightBlocks[workNum%len(rightBlocks)]
				for _, i := range lb {
					for _, j := range rb {
						fn(out[(i*m+j)*cols:], left[i*dim:], right[j*cols:])
					}
				}
				prog.inc()
				return nil
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// blocks partitions shape into hyper-rectangles of at most size elements per axis and returns
// the flat indices each one covers.
func blocks(shape []int, size int) [][]int {
	if object3d.ShapeSize(shape) == 0 {
		return nil
	}
	grid := make([]int, len(shape))
	for k, s := range shape {
		grid[k] = (s + size - 1) / size
	}

	out := make([][]int, 0, object3d.ShapeSize(grid))
	for b := 0; b < object3d.ShapeSize(grid); b++ {
		cell := object3d.UnravelIndex(b, grid)
		extent := make([]int, len(shape))
		for k := range shape {
			extent[k] = min(size, shape[k]-cell[k]*size)
		}
		idx := make([]int, 0, object3d.ShapeSize(extent))
		for e := 0; e < object3d.ShapeSize(extent); e++ {
			local := object3d.UnravelIndex(e, extent)
			flat := 0
			for k := range shape {
				flat = flat*shape[k] + cell[k]*size + local[k]
			}
			idx = append(idx, flat)
		}
		out = append(out, idx)
	}
	return out
}

// progressBar is the part of a pterm progress bar used to report block completion.
type progressBar interface {
	Increment() *pterm.ProgressbarPrinter
	Stop() (*pterm.ProgressbarPrinter, error)
}

type progress struct {
	total  int64
	done   *atomic.Int64
	fn     ProgressFunc
	mu     sync.Mutex
	bar    progressBar
	logger logging.Logger
}

func newProgress(o *options, total int64) *progress {
	p := &progress{total: total, done: atomic.NewInt64(0), fn: o.progressFn, logger: o.logger}
	if o.progress && total > 0 {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(int(total)).
			WithTitle("Computing outer product").
			Start()
		if err != nil {
			o.logger.Debugw("progress bar unavailable", "error", err)
		} else {
			p.bar = bar
		}
	}
	return p
}

func (p *progress) inc() {
	done := p.done.Inc()
	if p.fn != nil {
		p.fn(done, p.total)
	}
	if p.bar != nil {
		p.mu.Lock()
		p.bar.Increment()
		p.mu.Unlock()
	}
}

func (p *progress) stop() {
	if p.bar == nil {
		return
	}
	if _, err := p.bar.Stop(); err != nil {
		p.logger.Debugw("stopping progress bar", "error", err)
	}
}
