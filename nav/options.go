package nav

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/voxnav/astar"
	"github.com/katalvlaran/voxnav/navgraph"
)

// Observer receives rebuild and search statistics. metrics.Collector
// implements it.
type Observer interface {
	ObserveRebuild(surfaces, waypoints int, d time.Duration)
	ObserveSearch(expanded int, found bool)
}

type nopObserver struct{}

func (nopObserver) ObserveRebuild(int, int, time.Duration) {}
func (nopObserver) ObserveSearch(int, bool)                {}

// Options configures a World.
type Options struct {
	Logger   *slog.Logger
	Observer Observer
	Graph    []navgraph.Option
	Search   []astar.Option
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions discards logs and observations and uses the package
// defaults of navgraph and astar.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer: nopObserver{},
	}
}

// WithLogger sets the structured logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver sets the statistics sink. nil keeps the default.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithGraphOptions appends options for the navigation graph.
func WithGraphOptions(opts ...navgraph.Option) Option {
	return func(o *Options) { o.Graph = append(o.Graph, opts...) }
}

// WithSearchOptions appends options for the path finder.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(o *Options) { o.Search = append(o.Search, opts...) }
}
