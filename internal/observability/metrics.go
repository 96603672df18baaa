package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FlowsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mibot_flows_started_total",
			Help: "Ad-reward flow triggers accepted",
		}, []string{"flow"},
	)
	FlowsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mibot_flows_finished_total",
			Help: "Ad-reward flow results by status",
		}, []string{"flow", "status"},
	)
	PollTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mibot_poll_ticks_total",
			Help: "Status poller ticks by poller and result",
		}, []string{"poller", "result"},
	)
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mibot_diag_requests_total",
			Help: "Diagnostics API requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mibot_diag_request_duration_seconds",
		Help:    "Diagnostics API latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mibot_diag_in_flight",
		Help: "In-flight diagnostics requests",
	})
)

func init() {
	prometheus.MustRegister(FlowsStarted, FlowsFinished, PollTicks, RequestsTotal, Latency, InFlight)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code  int
	wrote bool
}

func (r *rec) WriteHeader(code int) {
	if r.wrote {
		return
	}
	r.wrote = true
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *rec) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
