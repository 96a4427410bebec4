// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"fmt"
	"slices"
)

// Number is the set of types that the numeric classifiers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Threshold is an optional numeric boundary. The zero value is unset, and an
// unset Threshold never matches.
type Threshold[N Number] struct {
	// Value is the boundary itself. It is ignored unless Set is true.
	Value N

	// Set indicates whether this Threshold takes part in a classification.
	Set bool
}

// Limit returns a Threshold set to v.
func Limit[N Number](v N) Threshold[N] {
	return Threshold[N]{Value: v, Set: true}
}

// NumericRules are the thresholds and message decoration for Ascending
// and Descending.
type NumericRules[N Number] struct {
	// Warning is the threshold that produces StatusWarning.
	Warning Threshold[N]

	// Critical is the threshold that produces StatusCritical. It is always
	// checked before Warning, whatever the two values are.
	Critical Threshold[N]

	// Prefix is prepended to each recorded message.
	Prefix string

	// Suffix is appended to each recorded message.
	Suffix string

	// Units is appended to every number in a recorded message.
	Units string
}

// EnumRules are the sets of known values for EvaluateEnum and EvaluateEnumList.
// Sets may overlap, in which case the more severe set wins. The zero value has
// no known values at all.
type EnumRules[T comparable] struct {
	// OK are values that produce StatusOK.
	OK []T

	// Warning are values that produce StatusWarning.
	Warning []T

	// Critical are values that produce StatusCritical.
	Critical []T

	// Unknown are values that produce StatusUnknown.
	Unknown []T

	// Prefix is prepended to each recorded message.
	Prefix string

	// Suffix is appended to each recorded message.
	Suffix string
}

// Evaluator classifies observed values and records a finding for each result
// that is not OK. An Evaluator is bound to one Recorder for its lifetime, and
// several Evaluators may share the same Recorder.
type Evaluator struct {
	r Recorder
}

// NewEvaluator returns an Evaluator that writes its findings into r.
// This function panics if r is nil.
func NewEvaluator(r Recorder) *Evaluator {
	if r == nil {
		panic("nagcheck: an Evaluator requires a non-nil Recorder")
	}

	return &Evaluator{r: r}
}

// record adds a finding if s is not OK, then returns s.
func (e *Evaluator) record(s Status, text string) Status {
	if s != StatusOK {
		e.r.AddRecord(s, text)
	}

	return s
}

// Error records err under ErrorStatus(err), prefixed with prefix. A nil
// error records nothing and yields StatusOK. A non-nil error that reports
// StatusOK for itself is recorded as StatusUnknown.
func (e *Evaluator) Error(err error, prefix string) Status {
	if err == nil {
		return StatusOK
	}

	s := ErrorStatus(err)
	if s == StatusOK {
		s = StatusUnknown
	}

	return e.record(s, prefix+err.Error())
}

// EvaluateEnum classifies value by membership in the rule sets. The sets are
// tested in the fixed order Unknown, Critical, Warning, OK, and the first
// match wins, so a value listed in more than one set is never masked by a
// less severe one. A match in Unknown, Critical, or Warning records
// "{prefix}value is {value}{suffix}".
//
// A value in none of the sets yields notFound. When notFound is not StatusOK,
// "{prefix}value {value} not found{suffix}" is recorded under it.
func EvaluateEnum[T comparable](e *Evaluator, value T, notFound Status, rules EnumRules[T]) Status {
	matched := fmt.Sprintf("%svalue is %v%s", rules.Prefix, value, rules.Suffix)
	switch {
	case slices.Contains(rules.Unknown, value):
		return e.record(StatusUnknown, matched)

	case slices.Contains(rules.Critical, value):
		return e.record(StatusCritical, matched)

	case slices.Contains(rules.Warning, value):
		return e.record(StatusWarning, matched)

	case slices.Contains(rules.OK, value):
		return StatusOK

	default:
		return e.record(
			notFound,
			fmt.Sprintf("%svalue %v not found%s", rules.Prefix, value, rules.Suffix),
		)
	}
}

// EvaluateEnumList applies EvaluateEnum to each element of values, in order,
// and returns the worst result. Every element's finding is recorded, so a value
// that appears twice produces two records.
//
// An empty list yields empty. When empty is not StatusOK,
// "{prefix}list is Empty{suffix}" is recorded under it.
func EvaluateEnumList[T comparable](e *Evaluator, values []T, notFound, empty Status, rules EnumRules[T]) Status {
	if len(values) == 0 {
		return e.record(empty, rules.Prefix+"list is Empty"+rules.Suffix)
	}

	var worst Status
	for _, v := range values {
		worst = Worst(worst, EvaluateEnum(e, v, notFound, rules))
	}

	return worst
}

// Ascending classifies a value where larger is worse. Critical is checked
// first: value > Critical yields StatusCritical and records
// "{prefix}{value}{units} is > {critical}{units}{suffix}". Otherwise
// value > Warning yields StatusWarning with the same form of message.
// Otherwise the result is StatusOK. A value equal to a threshold does
// not exceed it.
func Ascending[N Number](e *Evaluator, value N, rules NumericRules[N]) Status {
	switch {
	case rules.Critical.Set && value > rules.Critical.Value:
		return e.record(StatusCritical, rules.message(value, ">", rules.Critical.Value))

	case rules.Warning.Set && value > rules.Warning.Value:
		return e.record(StatusWarning, rules.message(value, ">", rules.Warning.Value))

	default:
		return StatusOK
	}
}

// Descending classifies a value where smaller is worse. It is the mirror of
// Ascending, using strict less-than and "is <" in its messages.
func Descending[N Number](e *Evaluator, value N, rules NumericRules[N]) Status {
	switch {
	case rules.Critical.Set && value < rules.Critical.Value:
		return e.record(StatusCritical, rules.message(value, "<", rules.Critical.Value))

	case rules.Warning.Set && value < rules.Warning.Value:
		return e.record(StatusWarning, rules.message(value, "<", rules.Warning.Value))

	default:
		return StatusOK
	}
}

func (nr NumericRules[N]) message(value N, op string, limit N) string {
	return fmt.Sprintf(
		"%s%v%s is %s %v%s%s",
		nr.Prefix, value, nr.Units, op, limit, nr.Units, nr.Suffix,
	)
}
