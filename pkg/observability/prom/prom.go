// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/hierview/pkg/observability"
)

const namespace = "hierview"

// Metrics records hook events as Prometheus collectors. One value satisfies
// every hook interface of the observability package.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	layoutNodes   *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	transitions *prometheus.CounterVec
	tasks       *prometheus.CounterVec
	navigations *prometheus.CounterVec
	stateEvents *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage", "kind"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_errors_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage", "kind"}),
		layoutNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Number of nodes handed to a layout.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"viz"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Render passes by transition type.",
		}, []string{"viz", "type"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "animation_tasks_total",
			Help:      "Animation tasks produced by transitions.",
		}, []string{"viz", "kind"}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Keyboard focus moves.",
		}, []string{"viz", "key"}),
		stateEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Drill, isolate, restore and expand/collapse actions.",
		}, []string{"viz", "action"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by route and status.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.stageDuration, m.stageErrors, m.layoutNodes,
		m.cacheEvents, m.cacheBytes,
		m.transitions, m.tasks, m.navigations, m.stateEvents,
		m.requests, m.requestDuration,
	)
	return m
}

// Install registers m as every observability hook.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetInteractionHooks(m)
	observability.SetHTTPHooks(m)
}

func (m *Metrics) stage(stage, kind string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage, kind).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(stage, kind).Inc()
	}
}

func (m *Metrics) OnBuildStart(context.Context, string) {}

func (m *Metrics) OnBuildComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	m.stage("build", "", d, err)
}

func (m *Metrics) OnLayoutStart(_ context.Context, vizType string, nodeCount int) {
	m.layoutNodes.WithLabelValues(vizType).Observe(float64(nodeCount))
}

func (m *Metrics) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	m.stage("layout", vizType, d, err)
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		m.stage("render", f, d, err)
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnTransition(vizType string, isDrill bool, deletes, updates, inserts int) {
	kind := "data"
	if isDrill {
		kind = "drill"
	}
	m.transitions.WithLabelValues(vizType, kind).Inc()
	m.tasks.WithLabelValues(vizType, "delete").Add(float64(deletes))
	m.tasks.WithLabelValues(vizType, "update").Add(float64(updates))
	m.tasks.WithLabelValues(vizType, "insert").Add(float64(inserts))
}

func (m *Metrics) OnNavigate(vizType, key string) {
	m.navigations.WithLabelValues(vizType, key).Inc()
}

func (m *Metrics) OnStateChange(vizType, action string) {
	m.stateEvents.WithLabelValues(vizType, action).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks    = (*Metrics)(nil)
	_ observability.CacheHooks       = (*Metrics)(nil)
	_ observability.InteractionHooks = (*Metrics)(nil)
	_ observability.HTTPHooks        = (*Metrics)(nil)
)
