package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing referenced entity (infrastructure, slot,
// fueling record, fuel type). Wrap it with context: fmt.Errorf("...: %w", ErrNotFound).
var ErrNotFound = errors.New("not found")

type RuleCode string

const (
	RuleInvalidWindow     RuleCode = "invalid_window"
	RuleInvalidQuantity   RuleCode = "invalid_quantity"
	RuleMarginConflict    RuleCode = "margin_conflict"
	RuleCapacityExceeded  RuleCode = "capacity_exceeded"
	RuleInvalidTransition RuleCode = "invalid_transition"
)

// RuleError is a recoverable business-rule rejection. It is reported to the
// caller with its code and never retried.
type RuleError struct {
	Code    RuleCode
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func NewRuleError(code RuleCode, format string, args ...interface{}) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError unwraps err into a RuleError when it is one.
func AsRuleError(err error) (*RuleError, bool) {
	var rule *RuleError
	if errors.As(err, &rule) {
		return rule, true
	}
	return nil, false
}
