package counters

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var projectionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "projection",
	Name:      "runs_total",
	Help:      "Total number of projection runs by entity kind.",
}, []string{"kind", "result"})

var warningCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "projection",
	Name:      "warnings_total",
	Help:      "Total number of projection warnings.",
}, []string{"kind"})

var queueGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "subscription",
	Name:      "queue_size",
	Help:      "Current update queue size per subscription.",
}, []string{"subscription_id"})

var deliveryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "subscription",
	Name:      "deliveries_total",
	Help:      "Total number of delivery attempts by result.",
}, []string{"subscription_id", "result"})

var cancellationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "subscription",
	Name:      "cancellations_total",
	Help:      "Total number of subscription cancellations by reason.",
}, []string{"reason"})

var activeSubscriptionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "subscription",
	Name:      "active",
	Help:      "Number of active subscriptions.",
})

func CountProjection(kind, result string) {
	if len(kind) == 0 || len(result) == 0 {
		return
	}
	projectionCounter.With(prometheus.Labels{"kind": kind, "result": result}).Inc()
}

func CountWarnings(kind string, count int) {
	if len(kind) == 0 || count == 0 {
		return
	}
	warningCounter.With(prometheus.Labels{"kind": kind}).Add(float64(count))
}

func ObserveQueueSize(subscriptionId string, size uint) {
	if len(subscriptionId) == 0 {
		return
	}
	queueGauge.With(prometheus.Labels{"subscription_id": subscriptionId}).Set(float64(size))
}

func CountDelivery(subscriptionId, result string) {
	if len(subscriptionId) == 0 || len(result) == 0 {
		return
	}
	deliveryCounter.With(prometheus.Labels{"subscription_id": subscriptionId, "result": result}).Inc()
}

func CountCancellation(reason string) {
	if len(reason) == 0 {
		return
	}
	cancellationCounter.With(prometheus.Labels{"reason": reason}).Inc()
}

func ObserveActiveSubscriptions(count int) {
	activeSubscriptionsGauge.Set(float64(count))
}
