package kmeans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/vectorstore"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
	// ErrTooManyClusters is returned when k exceeds the number of points.
	ErrTooManyClusters = errors.New("more clusters than points")
	// ErrEmptyStore is returned when the input store contains no vectors.
	ErrEmptyStore = errors.New("store contains no vectors")
	// ErrUnsupportedMetric is returned when a variant cannot prune safely
	// under the configured metric.
	ErrUnsupportedMetric = errors.New("metric not supported by variant")
)

// ErrDimensionMismatch indicates a center/point dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Variant selects the assignment strategy.
type Variant int

const (
	// VariantLloyd is the exact full-scan baseline. Works with any metric.
	VariantLloyd Variant = iota
	// VariantHamerly prunes with per-point upper/lower bounds and center
	// separations. Requires a metric satisfying the triangle inequality.
	VariantHamerly
	// VariantAnnulus extends Hamerly with a norm-sorted candidate filter.
	// Requires Euclidean distance.
	VariantAnnulus
)

func (v Variant) String() string {
	switch v {
	case VariantLloyd:
		return "Lloyd"
	case VariantHamerly:
		return "Hamerly"
	case VariantAnnulus:
		return "Annulus"
	default:
		return fmt.Sprintf("Unknown(%d)", v)
	}
}

// State is the terminal state of a clustering run.
type State int

const (
	// StateConverged means no point changed cluster in a refinement pass:
	// the reported centers and assignments are a fixpoint.
	StateConverged State = iota + 1
	// StateMaxIterReached means the iteration cap fired before convergence.
	// This is a normal termination mode, not a failure.
	StateMaxIterReached
)

func (s State) String() string {
	switch s {
	case StateConverged:
		return "Converged"
	case StateMaxIterReached:
		return "MaxIterReached"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Config holds the explicit parameters of a clustering run.
type Config struct {
	// K is the number of clusters.
	K int

	// MaxIterations caps the number of refinement iterations.
	// Zero or negative means run until convergence.
	MaxIterations int

	// Metric selects the distance function. Default: distance.MetricSquaredL2.
	Metric distance.Metric

	// Variant selects the assignment strategy. The zero value is VariantLloyd.
	Variant Variant

	// InitialCenters, when non-nil, are used verbatim as the k starting
	// centers. Takes precedence over Initializer. Runs are deterministic
	// given fixed initial centers.
	InitialCenters [][]float64

	// Initializer seeds the starting centers when InitialCenters is nil.
	// Default: k-means++ with a random seed.
	Initializer Initializer

	// Parallelism shards the per-point passes across workers, each keeping
	// partial cluster sums merged after the pass. Values <= 1 run the pass
	// sequentially.
	Parallelism int

	// Variance enables within-cluster variance statistics on the result.
	Variance bool

	// Logger receives per-iteration debug statistics. Nil disables logging.
	Logger *slog.Logger
}

// KMeans is a configured clustering algorithm instance.
// A single instance may be reused for multiple runs; each run builds its own
// mutable state.
type KMeans struct {
	cfg  Config
	dist distance.Func
	info distance.Info
}

// New validates the configuration and returns a runnable instance.
func New(cfg Config) (*KMeans, error) {
	if cfg.K <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, cfg.K)
	}

	fn, info, err := distance.Provider(cfg.Metric)
	if err != nil {
		return nil, err
	}

	switch cfg.Variant {
	case VariantLloyd:
	case VariantHamerly:
		if !info.TriangleInequality {
			return nil, fmt.Errorf("%w: %s requires the triangle inequality, got %s", ErrUnsupportedMetric, cfg.Variant, cfg.Metric)
		}
	case VariantAnnulus:
		if !info.NormPruning {
			return nil, fmt.Errorf("%w: %s requires Euclidean distance, got %s", ErrUnsupportedMetric, cfg.Variant, cfg.Metric)
		}
	default:
		return nil, fmt.Errorf("unknown variant: %v", cfg.Variant)
	}

	if cfg.Initializer == nil {
		cfg.Initializer = NewPlusPlusInit(rand.Int63())
	}

	return &KMeans{cfg: cfg, dist: fn, info: info}, nil
}

// Run clusters the store and returns the result.
//
// The run terminates when a refinement pass moves no point (StateConverged)
// or when the configured iteration cap fires (StateMaxIterReached). The
// context is checked once per iteration.
func (km *KMeans) Run(ctx context.Context, store vectorstore.Store) (*Result, error) {
	cfg := km.cfg

	n := store.Len()
	if n == 0 {
		return nil, ErrEmptyStore
	}
	if cfg.K > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrTooManyClusters, cfg.K, n)
	}

	means, err := km.initialMeans(store)
	if err != nil {
		return nil, err
	}

	r := newRun(store, km.dist, km.info, cfg, means)
	eng := r.engine(cfg.Variant)

	state := StateMaxIterReached
	iterations := 0
	for it := 1; cfg.MaxIterations <= 0 || it <= cfg.MaxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed, err := eng.iterate(ctx, it)
		if err != nil {
			return nil, err
		}

		iterations = it
		if cfg.Logger != nil {
			cfg.Logger.Debug("kmeans iteration",
				slog.Int("iteration", it),
				slog.Int("changed", changed),
				slog.String("variant", cfg.Variant.String()),
			)
		}

		// The initial pass assigns against the seed centers; convergence is
		// only meaningful after a refinement pass has recomputed the means
		// and confirmed the assignment, so the result is a fixpoint.
		if changed == 0 && it > 1 {
			state = StateConverged
			break
		}
	}

	return r.buildResult(state, iterations, cfg.Variance), nil
}

// initialMeans resolves the starting centers, validating dimensionality.
func (km *KMeans) initialMeans(store vectorstore.Store) ([]float64, error) {
	cfg := km.cfg
	dim := store.Dimension()

	if cfg.InitialCenters != nil {
		if len(cfg.InitialCenters) != cfg.K {
			return nil, fmt.Errorf("%w: got %d initial centers, want k=%d", ErrInvalidK, len(cfg.InitialCenters), cfg.K)
		}
		means := make([]float64, cfg.K*dim)
		for c, v := range cfg.InitialCenters {
			if len(v) != dim {
				return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
			}
			copy(means[c*dim:(c+1)*dim], v)
		}
		return means, nil
	}

	return cfg.Initializer.InitialCenters(store, cfg.K, km.dist)
}
