// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"context"
	"reflect"
)

// Check is one step of a probe run. It gathers whatever it observes and
// classifies it through the given Evaluator. A returned error is recorded
// via Evaluator.Error, so a Check need not record its own failures.
type Check func(context.Context, *Evaluator) error

// CheckFunc describes the various closure types that are convertible to Checks.
// Calling code can convert any closure that satisfies this type via AsCheck.
type CheckFunc interface {
	~func() error |
		~func(context.Context) error |
		~func(*Evaluator) error |
		~func(context.Context, *Evaluator) error
}

var (
	checkReturnError        = reflect.TypeOf((func() error)(nil))
	checkContextReturnError = reflect.TypeOf((func(context.Context) error)(nil))

	checkEvaluatorReturnError        = reflect.TypeOf((func(*Evaluator) error)(nil))
	checkContextEvaluatorReturnError = reflect.TypeOf((func(context.Context, *Evaluator) error)(nil))
)

// AsCheck converts a closure into a Check. Closures that take no Evaluator
// contribute only through the error they return.
func AsCheck[F CheckFunc](f F) Check {
	fv := reflect.ValueOf(f)
	switch {
	case fv.CanConvert(checkReturnError):
		cf := fv.Convert(checkReturnError).Interface().(func() error)
		return func(_ context.Context, _ *Evaluator) error {
			return cf()
		}

	case fv.CanConvert(checkContextReturnError):
		cf := fv.Convert(checkContextReturnError).Interface().(func(context.Context) error)
		return func(ctx context.Context, _ *Evaluator) error {
			return cf(ctx)
		}

	case fv.CanConvert(checkEvaluatorReturnError):
		cf := fv.Convert(checkEvaluatorReturnError).Interface().(func(*Evaluator) error)
		return func(_ context.Context, e *Evaluator) error {
			return cf(e)
		}

	default: // this is the exact signature of the Check type
		return fv.Convert(checkContextEvaluatorReturnError).Interface().(func(context.Context, *Evaluator) error)
	}
}

// Run executes each check in order on the calling goroutine. Errors returned
// by checks are recorded through Error. If ctx is done before a check starts,
// the remaining checks are skipped and ctx.Err() is recorded once as UNKNOWN.
//
// The returned Status is the worst Status among the recorded errors. Findings
// the checks record themselves are not reflected in it; use the Recorder's
// own result for the overall outcome.
func (e *Evaluator) Run(ctx context.Context, checks ...Check) (worst Status) {
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return Worst(worst, e.Error(err, "checks stopped: "))
		}

		worst = Worst(worst, e.Error(c(ctx, e), ""))
	}

	return
}
