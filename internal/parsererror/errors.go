// Package parsererror defines the error taxonomy shared by the normalizer,
// the aggregators and the command layer. Callers match with errors.Is
// against the sentinels or errors.As against the typed errors.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound is returned when a source file does not exist.
	ErrInputNotFound = errors.New("file not found")

	// ErrHeaderNotFound is returned when no row contains the required header set.
	ErrHeaderNotFound = errors.New("header row with specified columns not found")

	// ErrInvalidMonth is returned for a month specifier no supported format accepts.
	ErrInvalidMonth = errors.New("invalid month format")

	// ErrUnparseableAmount is returned by strict amount parsing only.
	ErrUnparseableAmount = errors.New("unparseable amount")

	// ErrEmptyInput is returned by maximum lookups over an empty record set.
	ErrEmptyInput = errors.New("empty input")
)

// InputNotFoundError carries the missing path.
type InputNotFoundError struct {
	FilePath string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("%s -> %s", ErrInputNotFound, e.FilePath)
}

func (e *InputNotFoundError) Unwrap() error {
	return ErrInputNotFound
}

// HeaderNotFoundError reports which header set could not be located.
type HeaderNotFoundError struct {
	FilePath string
	Required []string
	Scanned  int
}

func (e *HeaderNotFoundError) Error() string {
	where := ""
	if e.FilePath != "" {
		where = fmt.Sprintf(" in '%s'", e.FilePath)
	}
	return fmt.Sprintf("%s%s (required: %s; rows scanned: %d)",
		ErrHeaderNotFound, where, strings.Join(e.Required, ", "), e.Scanned)
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// InvalidMonthError reports the rejected month specifier.
type InvalidMonthError struct {
	Value string
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("%s: '%s' (use 'MM-YYYY' or 'Aug-YYYY')", ErrInvalidMonth, e.Value)
}

func (e *InvalidMonthError) Unwrap() error {
	return ErrInvalidMonth
}

// AmountError reports a value rejected by strict amount parsing.
type AmountError struct {
	Value string
	Err   error
}

func (e *AmountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s '%s': %v", ErrUnparseableAmount, e.Value, e.Err)
	}
	return fmt.Sprintf("%s '%s'", ErrUnparseableAmount, e.Value)
}

func (e *AmountError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnparseableAmount}
	}
	return []error{ErrUnparseableAmount, e.Err}
}
