package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidJSON   = errors.New("response is not valid json")
	ErrUnknownPolicy = errors.New("unknown error policy")
)

// StatusError is returned for responses outside of the 2xx range
type StatusError struct {
	Method string
	Path   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: network response was not ok: %s", e.Method, e.Path, e.Status)
}

// Policy decides what a failed request looks like to callers
type Policy int

const (
	// Propagate returns failures as errors
	Propagate Policy = iota
	// Suppress logs failures and returns no data instead
	Suppress
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "propagate":
		return Propagate, nil
	case "suppress":
		return Suppress, nil
	}
	return Propagate, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) String() string {
	if p == Suppress {
		return "suppress"
	}
	return "propagate"
}
