// Package metrics exports navigation rebuild and search statistics to
// Prometheus. Collector satisfies nav.Observer.
package metrics

import (
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "voxnav"

// Collector holds the voxnav metrics.
type Collector struct {
	rebuilds         prometheus.Counter
	surfacesChanged  prometheus.Counter
	waypointsChanged prometheus.Counter
	rebuildSeconds   prometheus.Histogram
	searches         *prometheus.CounterVec
	expanded         prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Surface and waypoint rebuilds applied.",
		}),
		surfacesChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "surfaces_changed_total",
			Help:      "Surfaces added, removed or reshaped by rebuilds.",
		}),
		waypointsChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waypoints_changed_total",
			Help:      "Waypoints added, removed or re-linked by rebuilds.",
		}),
		rebuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Wall time of one rebuild.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Path searches by outcome.",
		}, []string{"result"}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_expanded_nodes",
			Help:      "Nodes expanded per path search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	for _, m := range []prometheus.Collector{
		c.rebuilds, c.surfacesChanged, c.waypointsChanged, c.rebuildSeconds, c.searches, c.expanded,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveRebuild records one applied rebuild.
func (c *Collector) ObserveRebuild(surfaces, waypoints int, d time.Duration) {
	c.rebuilds.Inc()
	c.surfacesChanged.Add(float64(surfaces))
	c.waypointsChanged.Add(float64(waypoints))
	c.rebuildSeconds.Observe(d.Seconds())
}

// ObserveSearch records one path search.
func (c *Collector) ObserveSearch(expanded int, found bool) {
	result := "miss"
	if found {
		result = "found"
	}
	c.searches.WithLabelValues(result).Inc()
	c.expanded.Observe(float64(expanded))
}

// Handler serves the metrics gathered from g in the Prometheus format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// WriteText writes every metric gathered from g in the text exposition
// format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
