// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate stringer -type=Status -linecomment

// ErrInvalidStatus indicates that a piece of text does not name a Status.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the result of a probe or of a single classification. The numeric
// value of each Status is its plugin exit code, and a larger value is always
// a worse result.
type Status uint8

const (
	// StatusOK indicates that nothing wrong was observed.
	StatusOK Status = iota // OK

	// StatusWarning indicates a condition above a warning threshold.
	StatusWarning // WARNING

	// StatusCritical indicates a condition above a critical threshold.
	StatusCritical // CRITICAL

	// StatusUnknown indicates that the probe could not determine the state
	// of what it checks. It outranks every other Status.
	StatusUnknown // UNKNOWN
)

// ExitCode returns the process exit code for this Status. Values outside the
// defined range report the UNKNOWN exit code.
func (s Status) ExitCode() int {
	if s > StatusUnknown {
		return int(StatusUnknown)
	}

	return int(s)
}

// MarshalText produces the string value of this Status.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a Status label, ignoring case.
func (s *Status) UnmarshalText(text []byte) (err error) {
	*s, err = ParseStatus(string(text))
	return
}

// ParseStatus returns the Status for a label such as "WARNING" or "critical".
// Surrounding whitespace and case are ignored.
func ParseStatus(v string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "OK":
		return StatusOK, nil

	case "WARNING":
		return StatusWarning, nil

	case "CRITICAL":
		return StatusCritical, nil

	case "UNKNOWN":
		return StatusUnknown, nil

	default:
		return StatusUnknown, fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
}

// StatusOf is the lenient form of ParseStatus. Any label that is not
// recognized yields StatusUnknown.
func StatusOf(v string) Status {
	s, _ := ParseStatus(v)
	return s
}

// Worst returns the most severe of the given statuses. With no arguments,
// the result is StatusOK.
func Worst(statuses ...Status) (worst Status) {
	for _, s := range statuses {
		if s > StatusUnknown {
			s = StatusUnknown
		}

		if s > worst {
			worst = s
		}
	}

	return
}
