// internal/config/defaults.go
//
// Built-in defaults, loaded as the lowest koanf layer so YAML and env only
// need to carry what differs per deployment.

package config

import "time"

func defaults() map[string]any {
	return map[string]any{
		"http.listen_addr":         ":8080",
		"http.force_https":         false,
		"database.max_open_conns":  15,
		"database.max_idle_conns":  5,
		"database.retries":         2,
		"database.retry_backoff":   "500ms",
		"log.dir":                  "logs",
		"log.level":                "info",
		"site.localhost_alias":     "",
		"site.cache_ttl":           (5 * time.Minute).String(),
		"site.idle_ttl":            (30 * time.Minute).String(),
		"mail.backend":             "log",
		"mail.port":                587,
		"mail.from":                "no-reply@atelierelascanteia.ro",
		"mail.timeout":             "15s",
		"membership.min_child_age": 4,
		"membership.time_zone":     "Europe/Bucharest",
		"newsletter.confirm_ttl":   "72h",
		"media.backend":            "public",
		"media.presign_ttl":        "1h",
	}
}
