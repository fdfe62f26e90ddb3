package authflow

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MrEthical07/authflow/gateway"
)

// statusRule maps an inclusive HTTP status range to one category of the
// error taxonomy. Rules are evaluated in order; first match wins.
type statusRule struct {
	from int
	to   int
	err  error
}

// Per-endpoint classification tables. Exact codes follow the backend's
// observed contract; everything unmatched falls through to the endpoint's
// fallback category.
var (
	loginRules = []statusRule{
		{http.StatusUnauthorized, http.StatusUnauthorized, ErrInvalidCredentials},
	}

	requestOTPRules = []statusRule{}

	verifyOTPRules = []statusRule{
		{http.StatusTooManyRequests, http.StatusTooManyRequests, ErrTooManyAttempts},
		{http.StatusBadRequest, http.StatusUnauthorized, ErrOTPInvalid},
		{http.StatusForbidden, http.StatusForbidden, ErrOTPInvalid},
	}

	forgotPasswordRules = []statusRule{
		{http.StatusNotFound, http.StatusNotFound, ErrAccountNotFound},
	}

	verifyResetCodeRules = []statusRule{
		{http.StatusBadRequest, http.StatusBadRequest, ErrCodeExpired},
		{http.StatusUnauthorized, http.StatusUnauthorized, ErrCodeInvalid},
		{http.StatusTooManyRequests, http.StatusTooManyRequests, ErrRateLimited},
	}

	resetPasswordRules = []statusRule{
		{http.StatusBadRequest, http.StatusBadRequest, ErrWeakPassword},
		{http.StatusUnauthorized, http.StatusUnauthorized, ErrTokenExpired},
	}
)

// classify folds a gateway failure into exactly one taxonomy category.
// Non-HTTP failures (connectivity, decoding) become [ErrTransport]. A
// server-supplied message is carried in the error text; errors.Is still
// matches the category.
func classify(err error, rules []statusRule, fallback error) error {
	if err == nil {
		return nil
	}

	var apiErr *gateway.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	for _, rule := range rules {
		if apiErr.StatusCode >= rule.from && apiErr.StatusCode <= rule.to {
			return withServerMessage(rule.err, apiErr.Message)
		}
	}
	return withServerMessage(fallback, apiErr.Message)
}

// classify additionally counts transport-level failures, which are
// invisible to the per-category counters.
func (c *Client) classify(err error, rules []statusRule, fallback error) error {
	classified := classify(err, rules, fallback)
	if errors.Is(classified, ErrTransport) {
		c.metricInc(MetricTransportError)
	}
	return classified
}

// withServerMessage wraps the category so the server's own text takes
// precedence over the generic category text whenever present.
func withServerMessage(category error, message string) error {
	if message == "" {
		return category
	}
	return fmt.Errorf("%w: %s", category, message)
}
