package apperrors

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest indicates missing or malformed request parameters.
var ErrInvalidRequest = errors.New("invalid request")

// ErrDataNotReady indicates that the rate tables have not been loaded yet.
var ErrDataNotReady = errors.New("data not ready")

// ErrGatewayUnavailable indicates that the spreadsheet gateway could not be reached.
var ErrGatewayUnavailable = errors.New("gateway unavailable")

// ErrCurrencyNotFound indicates that a currency code is absent from the rate or profit table.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrRateOrFactorInvalid indicates a zero or unparsable numeric cell.
var ErrRateOrFactorInvalid = errors.New("rate or factor invalid")

// ErrInternal indicates an unanticipated failure.
var ErrInternal = errors.New("internal error")

// NewInvalidRequestError wraps ErrInvalidRequest with a formatted message.
func NewInvalidRequestError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// NewCurrencyNotFoundError reports a code missing from the named table.
func NewCurrencyNotFoundError(code, table string) error {
	return fmt.Errorf("%w: '%s' not present in %s table", ErrCurrencyNotFound, code, table)
}

// NewRateOrFactorInvalidError reports a bad numeric cell under the given key.
func NewRateOrFactorInvalidError(key, value string) error {
	return fmt.Errorf("%w: value '%s' for '%s' is zero or not a number", ErrRateOrFactorInvalid, value, key)
}

// NewGatewayUnavailableError wraps a fetch failure so that callers only see one opaque kind.
func NewGatewayUnavailableError(err error) error {
	if err == nil || errors.Is(err, ErrGatewayUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
}

// Kind returns a short stable label for err, used for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrDataNotReady):
		return "data_not_ready"
	case errors.Is(err, ErrGatewayUnavailable):
		return "gateway_unavailable"
	case errors.Is(err, ErrCurrencyNotFound):
		return "currency_not_found"
	case errors.Is(err, ErrRateOrFactorInvalid):
		return "rate_or_factor_invalid"
	default:
		return "internal_error"
	}
}
