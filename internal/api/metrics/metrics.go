// Package metrics defines the custom Prometheus metrics for the AltarMaker
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "altarmaker"

// RegistrationsTotal counts account registrations by outcome
// ("created", "conflict", "rejected").
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts by outcome
// ("success", "invalid_credentials", "unverified", "inactive", "role_mismatch").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// VerificationMailsTotal counts verification mail dispatches by result
// ("sent", "failed", "throttled").
var VerificationMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_mails_total",
		Help:      "Total number of verification mail dispatch attempts, by result.",
	},
	[]string{"result"},
)

// WallDesignSavesTotal counts wall-design snapshot inserts.
var WallDesignSavesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wall_design_saves_total",
		Help:      "Total number of wall-design snapshots saved.",
	},
)

// FeedbackSubmittedTotal counts accepted feedback entries by rating.
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of feedback entries accepted, by rating.",
	},
	[]string{"rating"},
)
