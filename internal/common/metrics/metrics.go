// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuditsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audits_completed_total",
			Help: "Total number of credit audits computed",
		},
	)

	AuditDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "audit_duration_seconds",
			Help: "Duration of audit computation in seconds",
		},
	)

	DisputeLettersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispute_letters_sent_total",
			Help: "Total dispute letters dispatched, by letter type",
		},
		[]string{"letter_type"},
	)

	MailSendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_send_failures_total",
			Help: "Failed carrier dispatch attempts, by reason",
		},
		[]string{"reason"},
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Overdue-deadline reminders delivered, by channel",
		},
		[]string{"channel"},
	)
)
