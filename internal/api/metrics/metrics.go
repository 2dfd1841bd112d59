// Package metrics defines and registers all custom Prometheus metrics for the
// D.N Express logistics API. It is the single source of truth for metric
// names, labels, and help strings. Metrics self-register with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dnexpress"

// ShipmentsCreatedTotal counts newly created shipments.
// Label:
//   - service: "standard", "express", or "overnight"
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by service level.",
	},
	[]string{"service"},
)

// StatusTransitionsTotal counts applied shipment status transitions.
// Label:
//   - status: the new status (e.g. "in-transit", "delivered")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of shipment status transitions applied.",
	},
	[]string{"status"},
)

// StatusRejectionsTotal counts refused transition attempts.
// Label:
//   - reason: "invalid_status" or "invalid_transition"
var StatusRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_rejections_total",
		Help:      "Total number of shipment status transitions refused.",
	},
	[]string{"reason"},
)

// NotificationsTotal counts status-change notifications by delivery outcome.
// Label:
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of status-change notifications, by result.",
	},
	[]string{"result"},
)

// ManifestsSubmittedTotal counts manifests handed to the Sethwan platform.
// Label:
//   - result: "accepted" or "rejected"
var ManifestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "manifests_submitted_total",
		Help:      "Total number of manifests submitted to Sethwan, by result.",
	},
	[]string{"result"},
)
