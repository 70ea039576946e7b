package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "riskregister",
		Name:      "operations_total",
		Help:      "Register operations by operation and result code",
	}, []string{"operation", "result"})

	advisoryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "riskregister",
		Name:      "advisories_total",
		Help:      "Advisory notices returned to callers by code",
	}, []string{"code"})
)

func observe(op string) {
	operationCounter.WithLabelValues(op, "ok").Inc()
}
