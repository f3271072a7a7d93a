package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_signup_attempts_total",
		Help: "Number of signup attempts grouped by status.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	refreshRotations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_refresh_rotations_total",
		Help: "Number of refresh rotations grouped by status.",
	}, []string{"status"})

	logoutEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_logout_events_total",
		Help: "Number of logout attempts grouped by status.",
	}, []string{"status"})

	messagesComposed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_messages_composed_total",
		Help: "Number of message compose attempts grouped by status.",
	}, []string{"status"})

	messagesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_messages_deleted_total",
		Help: "Number of message delete attempts grouped by status.",
	}, []string{"status"})

	followOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_ops_total",
		Help: "Follow graph mutations grouped by operation and status.",
	}, []string{"op", "status"})

	authzDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_authz_denied_total",
		Help: "Authorization denials grouped by action.",
	}, []string{"action"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncSignup increments the signup counter.
func IncSignup(status string) {
	signupAttempts.WithLabelValues(status).Inc()
}

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncRefresh increments the refresh rotation counter.
func IncRefresh(status string) {
	refreshRotations.WithLabelValues(status).Inc()
}

// IncLogout increments the logout counter.
func IncLogout(status string) {
	logoutEvents.WithLabelValues(status).Inc()
}

// IncCompose increments the message compose counter.
func IncCompose(status string) {
	messagesComposed.WithLabelValues(status).Inc()
}

// IncMessageDelete increments the message delete counter.
func IncMessageDelete(status string) {
	messagesDeleted.WithLabelValues(status).Inc()
}

// IncFollow increments the follow graph mutation counter.
func IncFollow(op, status string) {
	followOps.WithLabelValues(op, status).Inc()
}

// IncAuthzDenied increments the authorization denial counter.
func IncAuthzDenied(action string) {
	authzDenied.WithLabelValues(action).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
