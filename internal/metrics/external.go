package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// RecordExternalAPICall records one call to the auth or notification service
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(endpoint, errorType(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint replaces ids with a placeholder to bound label cardinality
// Example: /api/internal/notifications/users/123e4567-e89b-12d3-a456-426614174000 -> /api/internal/notifications/users/{id}
func normalizeEndpoint(endpoint string) string {
	return uuidPattern.ReplaceAllString(endpoint, "{id}")
}

var statusErrorTypes = map[int]string{
	400: "bad_request",
	401: "unauthorized",
	403: "forbidden",
	404: "not_found",
	408: "request_timeout",
	429: "too_many_requests",
	500: "internal_server_error",
	502: "bad_gateway",
	503: "service_unavailable",
	504: "gateway_timeout",
}

var networkErrorTypes = []struct {
	needles []string
	label   string
}{
	{[]string{"connection refused"}, "connection_refused"},
	{[]string{"no such host"}, "dns_error"},
	{[]string{"timeout", "deadline exceeded"}, "timeout"},
	{[]string{"EOF", "connection reset"}, "connection_reset"},
	{[]string{"TLS", "certificate"}, "tls_error"},
}

// errorType labels a failed call by status code first, then by transport error text
func errorType(statusCode int, err error) string {
	if label, ok := statusErrorTypes[statusCode]; ok {
		return label
	}
	switch {
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500 && statusCode < 600:
		return "server_error"
	}

	if err == nil {
		return "unknown"
	}

	msg := err.Error()
	for _, candidate := range networkErrorTypes {
		for _, needle := range candidate.needles {
			if strings.Contains(msg, needle) {
				return candidate.label
			}
		}
	}
	return "network_error"
}
