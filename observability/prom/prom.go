// Package prom exports codec metrics to Prometheus.
package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomca32/uule-converter/observability"
	"github.com/tomca32/uule-converter/uuleerrors"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Handler returns a Prometheus HTTP handler bound to the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// CodecObserver exports codec metrics to Prometheus.
type CodecObserver struct {
	encodeTotal *prometheus.CounterVec
	decodeTotal *prometheus.CounterVec
}

// NewCodecObserver registers codec metrics on the registry.
func NewCodecObserver(reg *prometheus.Registry) *CodecObserver {
	o := &CodecObserver{
		encodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uule_encode_total",
			Help: "UULE tokens encoded by format.",
		}, []string{"format"}),
		decodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uule_decode_total",
			Help: "UULE decode attempts by format and result.",
		}, []string{"format", "result"}),
	}
	reg.MustRegister(
		o.encodeTotal,
		o.decodeTotal,
	)
	return o
}

func (o *CodecObserver) Encode(format observability.Format) {
	o.encodeTotal.WithLabelValues(string(format)).Inc()
}

func (o *CodecObserver) Decode(format observability.Format, result uuleerrors.Code) {
	o.decodeTotal.WithLabelValues(string(format), string(result)).Inc()
}
