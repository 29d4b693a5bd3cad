package ai

import (
	"net/http"
	"strings"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// failureClass drives the branching of the retry loop.
type failureClass int

const (
	// classRetryable covers connection, timeout, and network failures plus 5xx
	// responses: a later attempt may succeed.
	classRetryable failureClass = iota
	// classNonRetryable covers everything else: the original error is surfaced.
	classNonRetryable
	// The remaining classes are terminal regardless of the attempt count.
	classInvalidAPIKey
	classRateLimited
	classQuotaExceeded
)

func (c failureClass) String() string {
	switch c {
	case classRetryable:
		return "retryable"
	case classNonRetryable:
		return "non-retryable"
	case classInvalidAPIKey:
		return "invalid-api-key"
	case classRateLimited:
		return "rate-limited"
	case classQuotaExceeded:
		return "quota-exceeded"
	default:
		return "unknown"
	}
}

// retryableMarkers are substrings of transport-level error messages that
// indicate a transient failure worth retrying.
var retryableMarkers = []string{"connection", "timeout", "network", "fetch failed"}

// classify maps a completion error to the retry decision. Status codes come
// from the OpenAI API error types, message markers catch transport errors that
// never reached the API.
func classify(err error) failureClass {
	switch status := statusCode(err); {
	case status == http.StatusUnauthorized:
		return classInvalidAPIKey
	case status == http.StatusTooManyRequests:
		return classRateLimited
	case status == http.StatusPaymentRequired:
		return classQuotaExceeded
	case status >= http.StatusInternalServerError:
		return classRetryable
	}

	message := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(message, marker) {
			return classRetryable
		}
	}

	return classNonRetryable
}

// statusCode extracts the HTTP status from the OpenAI client error chain, or 0
// when the failure happened before an HTTP response existed.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
