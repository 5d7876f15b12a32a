package model

import (
	"errors"
	"fmt"
)

// UsageError marks a command-line mistake the user has to correct.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// EnvironmentError marks an unmet precondition of the local environment,
// such as a missing binary or file. It is raised before any work starts.
type EnvironmentError struct {
	msg string
}

func (e *EnvironmentError) Error() string { return e.msg }

// Envf builds an EnvironmentError from a format string.
func Envf(format string, args ...any) error {
	return &EnvironmentError{msg: fmt.Sprintf(format, args...)}
}

// IsEnvironment reports whether err is, or wraps, an EnvironmentError.
func IsEnvironment(err error) bool {
	var ee *EnvironmentError
	return errors.As(err, &ee)
}
