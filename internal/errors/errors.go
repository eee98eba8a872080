package errors

import (
	"errors"
	"fmt"
)

// ErrAutomationsDisabled is returned by lifecycle operations when the
// automation feature is globally disabled.
var ErrAutomationsDisabled = errors.New("automations are disabled")

type RulekitError struct {
	Code    string
	Message string
	Err     error
}

func (e *RulekitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RulekitError) Unwrap() error {
	return e.Err
}

func New(code, message string) *RulekitError {
	return &RulekitError{Code: code, Message: message}
}

func Wrap(err error, code, message string) *RulekitError {
	return &RulekitError{Code: code, Message: message, Err: err}
}

// IsDisabled reports whether err indicates that automations are globally disabled.
func IsDisabled(err error) bool {
	return errors.Is(err, ErrAutomationsDisabled)
}
