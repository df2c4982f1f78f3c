// Package loader keeps per-query loading, error and data state on top of the
// catalog query layer, with "load more" pagination for list queries.
//
// Every Load starts a new generation; a fetch that finishes after a newer Load
// or after Close is discarded instead of being applied to stale state.
package loader

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

const (
	msgFetchProducts      = "Failed to fetch products"
	msgLoadMoreProducts   = "Failed to load more products"
	msgFetchProduct       = "Failed to fetch product"
	msgFetchCollection    = "Failed to fetch collection products"
	msgCollectionNotFound = "Collection not found"
)

// errorMessage falls back when err carries no text.
func errorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// tracker is the generation and in-flight bookkeeping shared by all loaders.
// Apart from init, methods must be called with mu held.
type tracker struct {
	mu         sync.Mutex
	generation uint64
	inFlight   bool
	closed     bool
	logger     *slog.Logger
}

func (t *tracker) init(logger *slog.Logger, name string) {
	if logger == nil {
		logger = slog.Default()
	}
	t.logger = logger.With("component", "loader", "loader", name)
}

// restart invalidates any outstanding fetch and returns the new generation.
func (t *tracker) restart() uint64 {
	t.generation++
	t.inFlight = false
	return t.generation
}

func (t *tracker) begin() {
	t.inFlight = true
}

// finish reports whether a result of generation gen may still be applied.
func (t *tracker) finish(gen uint64) bool {
	if t.closed || gen != t.generation {
		t.logger.Debug("stale result discarded", slog.Uint64("generation", gen), slog.Uint64("current", t.generation))
		return false
	}
	t.inFlight = false
	return true
}

func (t *tracker) close() {
	t.closed = true
	t.generation++
	t.inFlight = false
}
