// internal/domain/order/metrics.go
package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

const (
	transitionCheckout = "checkout"
	transitionAssign   = "assign"
	transitionStart    = "start"
	transitionComplete = "complete"
)

var transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tienda",
	Subsystem: "orders",
	Name:      "transitions_total",
	Help:      "Order workflow transitions by outcome",
}, []string{"transition", "result"})

func observeTransition(transition string, err error) {
	result := "ok"
	if err != nil {
		result = apperr.KindOf(err).String()
	}
	transitionsTotal.WithLabelValues(transition, result).Inc()
}
