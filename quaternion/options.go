package quaternion

import "go.viam.com/texture/logging"

// DefaultChunkSize is the block extent per navigation axis of a chunked outer product.
const DefaultChunkSize = 20

// ProgressFunc receives the number of finished and total blocks of a chunked outer product.
type ProgressFunc func(done, total int64)

type options struct {
	logger     logging.Logger
	chunked    bool
	chunkSize  int
	progress   bool
	progressFn ProgressFunc
	weights    []float64
}

// Option configures conversions, outer products and alignment.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Global()
	}
	return o
}

// WithLogger sets the logger that receives numerical precision warnings. The global logger is
// used otherwise.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithChunkSize computes an outer product block by block with n elements per navigation axis
// of each operand. Non-positive values select DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunked = true
		if n <= 0 {
			n = DefaultChunkSize
		}
		o.chunkSize = n
	}
}

// WithProgress shows a terminal progress bar while a chunked outer product runs.
func WithProgress(show bool) Option {
	return func(o *options) {
		o.progress = show
	}
}

// WithProgressFunc reports chunked outer product progress to fn. fn may be called concurrently.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(o *options) {
		o.progressFn = fn
	}
}

// WithWeights sets per-vector weights for FromAlignVectors.
func WithWeights(weights []float64) Option {
	return func(o *options) {
		o.weights = append([]float64(nil), weights...)
	}
}
