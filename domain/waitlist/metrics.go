package waitlist

import (
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess      = "success"
	outcomeInvalid      = "invalid"
	outcomeMisconfigure = "misconfigured"
	outcomeUnauthorized = "unauthorized"
	outcomeForbidden    = "forbidden"
	outcomeNotFound     = "not_found"
	outcomeRemote       = "remote_error"
)

type submissionMetrics struct {
	submissions *prometheus.CounterVec
}

func newSubmissionMetrics() *submissionMetrics {
	return &submissionMetrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Waitlist submissions by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

func (m *submissionMetrics) observe(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func outcomeFor(err error) string {
	switch apperrors.GetErrorType(err) {
	case "":
		return outcomeSuccess
	case apperrors.ErrorTypeInvalidRequest:
		return outcomeInvalid
	case apperrors.ErrorTypeConfiguration:
		return outcomeMisconfigure
	case apperrors.ErrorTypeUnauthorized:
		return outcomeUnauthorized
	case apperrors.ErrorTypeForbidden:
		return outcomeForbidden
	case apperrors.ErrorTypeNotFound:
		return outcomeNotFound
	default:
		return outcomeRemote
	}
}
