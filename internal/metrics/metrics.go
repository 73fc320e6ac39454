// Package metrics exposes the server's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts credential verifications by outcome
	// ("success", "failure", "rate_limited").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymstack",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	// GateDecisions counts edge-gate outcomes
	// ("allow", "session_expired", "invalid_token", "role_redirect").
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymstack",
		Subsystem: "gate",
		Name:      "decisions_total",
		Help:      "Access gate decisions by outcome.",
	}, []string{"decision"})

	// TokenDecodeFailures counts session tokens rejected by the codec.
	TokenDecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymstack",
		Subsystem: "token",
		Name:      "decode_failures_total",
		Help:      "Session tokens that failed signature or expiry checks.",
	})
)
