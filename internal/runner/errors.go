package runner

import "fmt"

// TransientError represents a collaborator call (browser, LLM, renderer)
// that failed in a way worth retrying on the next run.
type TransientError struct {
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transient failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transient failure: %s", e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// NotFoundError represents an expected element or file that was missing;
// the item is skipped and the batch continues.
type NotFoundError struct {
	Message string
	Cause   error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("not found: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("not found: %s", e.Message)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// CorruptStateError represents a store file whose content failed validation.
// Loads degrade the store to empty instead of failing, so this class is only
// surfaced by explicit health checks.
type CorruptStateError struct {
	Path  string
	Cause error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state in %s: %v", e.Path, e.Cause)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Cause
}

// ConfigError represents a missing credential, template or path. It is the
// only class that aborts an entire run before any item is touched.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
