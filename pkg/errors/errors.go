package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents listing fetch failures (network, HTTP, parse, empty result)
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypePersistence represents state file read/write failures
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeDelivery represents a single destination send failure
	ErrorTypeDelivery ErrorType = "delivery"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// RunError represents an error raised during a batch run
type RunError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error must abort the run.
// Fetch and configuration errors are fatal; persistence and delivery
// errors are recovered at the call site.
func (e *RunError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeFetch, ErrorTypeConfiguration:
		return true
	default:
		return false
	}
}

// New creates a new RunError
func New(errType ErrorType, component, message string, err error) *RunError {
	return &RunError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(component, message string, err error) *RunError {
	return New(ErrorTypeFetch, component, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(component, message string, err error) *RunError {
	return New(ErrorTypePersistence, component, message, err)
}

// NewDelivery creates a new delivery error
func NewDelivery(component, message string, err error) *RunError {
	return New(ErrorTypeDelivery, component, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *RunError {
	return New(ErrorTypeConfiguration, "config", message, err)
}
