// Package prometheus instruments chatbot services with Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/challengegit/chatbot"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure Asker implements chatbot.Asker.
var _ chatbot.Asker = (*Asker)(nil)

// Asker wraps a chatbot.Asker and records the outcome and latency of
// every question.
type Asker struct {
	next     chatbot.Asker
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAsker creates an instrumented Asker and registers its collectors with reg.
func NewAsker(next chatbot.Asker, reg prometheus.Registerer) (*Asker, error) {
	a := &Asker{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "ask_requests_total",
			Help:      "Questions answered, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chatbot",
			Name:      "ask_duration_seconds",
			Help:      "Time to answer a question, by outcome.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{a.requests, a.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Ask delegates to the wrapped asker.
func (a *Asker) Ask(ctx context.Context, question string) (answer string, err error) {
	defer func(begin time.Time) {
		outcome := Outcome(err)
		a.requests.WithLabelValues(outcome).Inc()
		a.duration.WithLabelValues(outcome).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return a.next.Ask(ctx, question)
}

// Requests returns the request counter, for tests and dashboards.
func (a *Asker) Requests() *prometheus.CounterVec {
	return a.requests
}

// Outcome maps an ask error to a metric label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return chatbot.ErrorCode(err)
}
