package sendmessage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"
)

const (
	OutcomeDelivered = "delivered"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// A nil *Metrics records nothing.
type Metrics struct {
	sent     *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qiwei",
			Name:      "messages_sent_total",
			Help:      "Webhook calls by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qiwei",
			Name:      "send_duration_seconds",
			Help:      "Duration of webhook calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.sent, m.duration)
	}
	return m
}

func (m *Metrics) observe(body string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.sent.WithLabelValues(Outcome(body, err)).Inc()
}

// Outcome classifies a send result. The webhook answers 200 with an errcode
// field; a non-zero errcode means the message was rejected.
func Outcome(body string, err error) string {
	if err != nil {
		return OutcomeFailed
	}
	if code := ErrCode(body); code.Exists() && code.Int() != 0 {
		return OutcomeRejected
	}
	return OutcomeDelivered
}

func ErrCode(body string) gjson.Result {
	if !gjson.Valid(body) {
		return gjson.Result{}
	}
	return gjson.Get(body, "errcode")
}
