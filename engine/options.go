package engine

import (
	"fmt"
	"time"

	"github.com/utkarsh5026/matmul/internal/scheduler"
	"github.com/utkarsh5026/matmul/matrix"
	"github.com/utkarsh5026/matmul/metrics"
	"golang.org/x/time/rate"
)

// DefaultWorkerCount is the pool size used when WithWorkerCount is not given.
const DefaultWorkerCount = 4

// Routing selects how cells are distributed over workers.
type Routing = scheduler.SchedulingStrategyType

const (
	// RoutingRoundRobin sends cell idx to worker idx % P. This is the default.
	RoutingRoundRobin = scheduler.SchedulingRoundRobin
	// RoutingShared puts every cell on one queue consumed by all workers.
	RoutingShared = scheduler.SchedulingShared
	// RoutingLeastLoaded sends each cell to the worker with the shortest backlog.
	RoutingLeastLoaded = scheduler.SchedulingLeastLoaded
)

// ParseRouting maps "round-robin", "shared" or "least-loaded" to a Routing.
func ParseRouting(name string) (Routing, error) {
	return scheduler.ParseStrategy(name)
}

// Routings lists every routing policy.
func Routings() []Routing {
	return scheduler.AllStrategies()
}

// Option is a functional option for configuring an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	workerCount int
	routing     Routing
	rateLimiter *rate.Limiter
	pinWorkers  bool
	callTimeout time.Duration
	registry    metrics.Registry

	// Typed hooks are stored erased and checked against the engine's element
	// type when the engine is built.
	beforeCell     any
	beforeCellType string
	onCellEnd      any
	onCellEndType  string
}

// WithWorkerCount sets the number of workers. Values below 1 are ignored.
func WithWorkerCount(count int) Option {
	return func(cfg *engineConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithRouting selects the routing policy.
func WithRouting(r Routing) Option {
	return func(cfg *engineConfig) {
		cfg.routing = r
	}
}

// WithRateLimit caps how many cells the whole pool computes per second.
// burst is the number of cells that may start back to back.
// Non-positive arguments disable the limit.
//
// Example:
//
//	WithRateLimit(1000, 50) // 1000 cells/sec with bursts of 50
func WithRateLimit(cellsPerSecond float64, burst int) Option {
	return func(cfg *engineConfig) {
		if cellsPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(cellsPerSecond), burst)
		} else {
			cfg.rateLimiter = nil
		}
	}
}

// WithCPUAffinity pins worker i to core i % NumCPU where the platform allows it.
func WithCPUAffinity(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.pinWorkers = enabled
	}
}

// WithCallTimeout bounds every Multiply call. Zero means no bound beyond the
// caller's context.
func WithCallTimeout(d time.Duration) Option {
	return func(cfg *engineConfig) {
		if d >= 0 {
			cfg.callTimeout = d
		}
	}
}

// WithMetrics reports engine activity to r. A nil registry disables metrics.
func WithMetrics(r metrics.Registry) Option {
	return func(cfg *engineConfig) {
		cfg.registry = r
	}
}

// WithBeforeCell registers a hook that a worker calls before computing a cell.
// T must match the engine's element type; NewEngine panics otherwise.
func WithBeforeCell[T matrix.Numeric](fn func(Cell[T])) Option {
	return func(cfg *engineConfig) {
		cfg.beforeCell = fn
		cfg.beforeCellType = typeName[T]()
	}
}

// WithOnCellEnd registers a hook that a worker calls after computing a cell,
// with the value and error it produced. T must match the engine's element
// type; NewEngine panics otherwise.
func WithOnCellEnd[T matrix.Numeric](fn func(cell Cell[T], value T, err error)) Option {
	return func(cfg *engineConfig) {
		cfg.onCellEnd = fn
		cfg.onCellEndType = typeName[T]()
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func createConfig(opts ...Option) *engineConfig {
	cfg := &engineConfig{
		workerCount: DefaultWorkerCount,
		routing:     RoutingRoundRobin,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// processorConfig turns cfg into the scheduler's configuration for element
// type T, unwrapping the typed hooks.
//
// Panics if a hook was registered for a different element type.
func processorConfig[T matrix.Numeric](cfg *engineConfig) *scheduler.ProcessorConfig[Cell[T], T] {
	expected := typeName[T]()
	pc := &scheduler.ProcessorConfig[Cell[T], T]{
		WorkerCount:        cfg.workerCount,
		SchedulingStrategy: cfg.routing,
		RateLimiter:        cfg.rateLimiter,
	}

	if cfg.beforeCell != nil {
		if cfg.beforeCellType != expected {
			panic(fmt.Sprintf("WithBeforeCell hook expects element type %s, but engine multiplies type %s",
				cfg.beforeCellType, expected))
		}
		pc.BeforeTaskStart = cfg.beforeCell.(func(Cell[T]))
	}

	if cfg.onCellEnd != nil {
		if cfg.onCellEndType != expected {
			panic(fmt.Sprintf("WithOnCellEnd hook expects element type %s, but engine multiplies type %s",
				cfg.onCellEndType, expected))
		}
		pc.OnTaskEnd = cfg.onCellEnd.(func(Cell[T], T, error))
	}

	return pc
}
