package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness_booking",
			Name:      "backend_requests_total",
			Help:      "Backend REST calls by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	botUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness_booking",
			Name:      "bot_updates_total",
			Help:      "Processed Telegram updates by kind.",
		},
		[]string{"kind"},
	)

	syncTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitness_booking",
			Name:      "status_sync_tasks_total",
			Help:      "Reconciliation task outcomes.",
		},
		[]string{"result"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fitness_booking",
			Name:      "active_sessions",
			Help:      "Chats currently holding a session.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, botUpdates, syncTasks, activeSessions)
	})
}

// IncBackendRequest counts one backend call.
func IncBackendRequest(method, path, status string) {
	backendRequests.WithLabelValues(method, path, status).Inc()
}

// IncBotUpdate counts one processed Telegram update.
func IncBotUpdate(kind string) {
	botUpdates.WithLabelValues(kind).Inc()
}

// IncSyncTask counts a reconciliation task outcome.
func IncSyncTask(result string) {
	syncTasks.WithLabelValues(result).Inc()
}

// SessionOpened and SessionClosed track the active session gauge.
func SessionOpened() { activeSessions.Inc() }
func SessionClosed() { activeSessions.Dec() }

// Serve exposes /metrics on the given port. Blocks like http.ListenAndServe.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
