package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CodeReports counts report-code submissions by outcome.
	CodeReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referred_code_reports_total",
			Help: "Number of discount code outcome reports received",
		},
		[]string{"outcome"}, // success or failure
	)

	// CodeVerifications counts codes flipped to verified.
	CodeVerifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referred_code_verifications_total",
			Help: "Number of discount codes marked verified",
		},
	)

	// CodeChecks counts public check-codes lookups by result.
	CodeChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referred_code_checks_total",
			Help: "Number of check-codes lookups",
		},
		[]string{"result"}, // hit or miss
	)
)

// RecordReport tracks one outcome report.
func RecordReport(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	CodeReports.WithLabelValues(outcome).Inc()
}

// RecordCheck tracks one check-codes lookup.
func RecordCheck(hasCodes bool) {
	result := "miss"
	if hasCodes {
		result = "hit"
	}
	CodeChecks.WithLabelValues(result).Inc()
}
