package bridge

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"musicstream/internal/eventbus"
)

// Metrics holds the collectors exposed on /metrics
type Metrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	playerCommands *prometheus.CounterVec
	framesRejected *prometheus.CounterVec
	framesReceived prometheus.Counter
	playersPlaying prometheus.Gauge
	eventsDropped  prometheus.Counter
	viewers        prometheus.Gauge
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "musicstream",
			Name:      "searches_total",
			Help:      "Search requests by outcome.",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "musicstream",
			Name:      "search_duration_seconds",
			Help:      "Time from request to applied response.",
			Buckets:   prometheus.DefBuckets,
		}),
		playerCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "musicstream",
			Name:      "player_commands_total",
			Help:      "Commands posted to embedded players.",
		}, []string{"func"}),
		framesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "musicstream",
			Name:      "frame_messages_rejected_total",
			Help:      "Inbound frame messages ignored by a player.",
		}, []string{"reason"}),
		framesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "musicstream",
			Name:      "frame_messages_received_total",
			Help:      "Inbound frame messages accepted by the bridge.",
		}),
		playersPlaying: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "musicstream",
			Name:      "players_playing",
			Help:      "Players whose local state is playing.",
		}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "musicstream",
			Name:      "bridge_events_dropped_total",
			Help:      "Outbound events dropped for slow page connections.",
		}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "musicstream",
			Name:      "bridge_viewers",
			Help:      "Open event streams.",
		}),
	}
	m.registry.MustRegister(
		m.searches,
		m.searchDuration,
		m.playerCommands,
		m.framesRejected,
		m.framesReceived,
		m.playersPlaying,
		m.eventsDropped,
		m.viewers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Subscribe feeds the collectors from bus. The returned func removes every
// subscription.
func (m *Metrics) Subscribe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchCompletedEvent)
			outcome := "ok"
			if ev.Results == 0 {
				outcome = "empty"
			}
			m.searches.WithLabelValues(outcome).Inc()
			m.searchDuration.Observe(ev.Duration.Seconds())
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchFailedEvent)
			outcome := "api_error"
			if ev.Transport {
				outcome = "transport_error"
			}
			m.searches.WithLabelValues(outcome).Inc()
			m.searchDuration.Observe(ev.Duration.Seconds())
		}),
		bus.Subscribe(eventbus.EventSearchDiscarded, func(eventbus.DomainEvent) {
			m.searches.WithLabelValues("discarded").Inc()
		}),
		bus.Subscribe(eventbus.EventPlayerCommandSent, func(e eventbus.DomainEvent) {
			m.playerCommands.WithLabelValues(e.(eventbus.PlayerCommandSentEvent).Func).Inc()
		}),
		bus.Subscribe(eventbus.EventFrameMessageRejected, func(e eventbus.DomainEvent) {
			m.framesRejected.WithLabelValues(e.(eventbus.FrameMessageRejectedEvent).Reason).Inc()
		}),
		bus.Subscribe(eventbus.EventPlaybackChanged, func(e eventbus.DomainEvent) {
			if e.(eventbus.PlaybackChangedEvent).Playing {
				m.playersPlaying.Inc()
			} else {
				m.playersPlaying.Dec()
			}
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
