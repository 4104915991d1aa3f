package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ReportRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamenight_report_requests_total",
			Help: "Statistics report requests, by report name",
		},
		[]string{"report"},
	)
	NotificationsScheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamenight_notifications_scheduled_total",
			Help: "Deferred notifications handed to the dispatcher",
		},
	)
	NotificationsFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamenight_notifications_fired_total",
			Help: "Deferred notifications that reached their fire time and sent",
		},
	)
	NotificationsRevoked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamenight_notifications_revoked_total",
			Help: "Deferred notifications revoked before firing",
		},
	)
	CatalogLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamenight_catalog_lookups_total",
			Help: "External catalog lookups, by outcome",
		},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(
		ReportRequests,
		NotificationsScheduled,
		NotificationsFired,
		NotificationsRevoked,
		CatalogLookups,
	)
}
