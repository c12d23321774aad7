package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	requests *prometheus.CounterVec
	handler  http.Handler
}

func newMetrics(cat Catalog) *metrics {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xdbf",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "API requests by route and status code.",
	}, []string{"route", "code"})
	titles := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "xdbf",
		Subsystem: "catalog",
		Name:      "titles",
		Help:      "Titles currently loaded in the catalog.",
	}, func() float64 {
		return float64(len(cat.Titles()))
	})
	reg.MustRegister(requests, titles)
	return &metrics{
		requests: requests,
		handler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}
