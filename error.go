// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import "errors"

// SelfStatuser is an optional interface that an error can implement
// to indicate the Status it should be reported with.
type SelfStatuser interface {
	Status() Status
}

type statusError struct {
	err    error
	status Status
}

func (se *statusError) Error() string {
	return se.err.Error()
}

func (se *statusError) Unwrap() error {
	return se.err
}

func (se *statusError) Status() Status {
	return se.status
}

// AddStatus associates a Status with the given error. The
// returned error will wrap err and implement SelfStatuser.
//
// If err already has a status associated with it, it will be
// replaced with the given status.
func AddStatus(err error, status Status) error {
	return &statusError{
		err:    err,
		status: status,
	}
}

// ErrorStatus examines an error to determine what Status to
// associate with it.
//
// If err is nil, this function returns StatusOK.
//
// If err implements SelfStatuser, then the result of SelfStatuser.Status() is returned.
//
// For a non-nil error that does not implement SelfStatuser, this function
// returns StatusUnknown. A probe that failed to gather its data cannot say
// anything about the state of what it checks.
func ErrorStatus(err error) Status {
	var s SelfStatuser
	switch {
	case err == nil:
		return StatusOK

	case errors.As(err, &s):
		return s.Status()

	default:
		return StatusUnknown
	}
}
