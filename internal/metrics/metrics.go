// Package metrics holds Prometheus instruments used across the backend.
// All collectors are registered with the default registry, so importing
// this package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanteia_active_sites",
			Help: "Number of sites currently loaded in the content cache.",
		})

	SiteLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanteia_site_load_total",
			Help: "Cumulative number of site content loads.",
		})

	SiteLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanteia_site_load_errors_total",
			Help: "Cumulative number of site content load errors.",
		})

	SiteCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanteia_site_cache_hits_total",
			Help: "Requests served from cached site content.",
		})

	SiteEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanteia_site_evict_total",
			Help: "Cumulative number of sites evicted from the cache.",
		})

	ApplicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanteia_membership_applications_total",
			Help: "Membership application submissions by outcome.",
		}, []string{"outcome"})

	NewsletterTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanteia_newsletter_transitions_total",
			Help: "Newsletter subscribe and confirm calls by action and outcome.",
		}, []string{"action", "outcome"})

	MailFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanteia_mail_failures_total",
			Help: "Outbound mail delivery failures by purpose.",
		}, []string{"purpose"})
)

func init() {
	prometheus.MustRegister(
		ActiveSites,
		SiteLoadTotal,
		SiteLoadErrorsTotal,
		SiteCacheHitsTotal,
		SiteEvictTotal,
		ApplicationsTotal,
		NewsletterTotal,
		MailFailuresTotal,
	)
}
