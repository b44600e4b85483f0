package platform

import (
	"fmt"
	"time"
)

// NotFoundError indicates the platform does not know the requested resource.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

func NewNotFoundError(kind string, name string) *NotFoundError {
	return &NotFoundError{
		Kind: kind,
		Name: name,
	}
}

// ProvisioningTimeoutError indicates a compute target did not reach a
// terminal provisioning state within the configured timeout. The target may
// still finish provisioning on the platform side.
type ProvisioningTimeoutError struct {
	Target  string
	Timeout time.Duration
}

func (e *ProvisioningTimeoutError) Error() string {
	return fmt.Sprintf("compute target '%s' did not finish provisioning within %s", e.Target, e.Timeout)
}

// RequestError carries a non-success platform response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform request failed with status %d: %s", e.StatusCode, e.Message)
}
