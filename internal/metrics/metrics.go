// Package metrics holds the Prometheus instruments used across the
// cookie layer.  All collectors are registered with the global
// registry, so importing this package in main.go is enough to expose
// them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CookiesSetTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cookies_set_total",
			Help: "Cumulative number of Set-Cookie directives written.",
		})

	CookiesDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cookies_deleted_total",
			Help: "Cumulative number of cookie deletions issued.",
		})

	CookieErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookie_errors_total",
			Help: "Cumulative write-path failures, labelled by reason.",
		},
		[]string{"reason"})

	SiteLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_total",
			Help: "Cumulative number of site records loaded from the site table.",
		})

	SiteLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_errors_total",
			Help: "Cumulative number of site lookup failures.",
		})
)

func init() {
	prometheus.MustRegister(
		CookiesSetTotal,
		CookiesDeletedTotal,
		CookieErrorsTotal,
		SiteLoadTotal,
		SiteLoadErrorsTotal,
	)
}
