package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError collects field-level problems with a request payload.
// These are recovered locally by the caller (re-rendered as form messages)
// and never reach the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Field returns the message recorded for a field, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	msg, ok := e.Fields[name]
	return msg, ok
}

// wrapRuleErrors converts the per-field error map produced by
// validation.ValidateStruct into a *ValidationError keyed by json field name.
func wrapRuleErrors(err error) error {
	if err == nil {
		return nil
	}
	fields := map[string]string{}
	if fieldErrs, ok := err.(validation.Errors); ok {
		for name, ferr := range fieldErrs {
			fields[name] = ferr.Error()
		}
	} else {
		fields["request"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

// matchesString checks that both values match.
func matchesString(other string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != other {
			return errors.New("passwords do not match")
		}
		return nil
	}
}
