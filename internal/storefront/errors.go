package storefront

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("storefront configuration missing")
	ErrRequest       = errors.New("storefront request failed")
)

// ConfigurationError is fatal: the client cannot be built until the
// endpoint and token are provided.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s not set, provide %s and %s",
		ErrConfiguration.Error(), strings.Join(e.Missing, " and "), EnvServerEndpoint, EnvServerToken)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// RequestError wraps any transport, HTTP or GraphQL failure of one operation.
type RequestError struct {
	Operation  string
	StatusCode int
	Throttled  bool
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("storefront %s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("storefront %s failed: %v", e.Operation, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}
