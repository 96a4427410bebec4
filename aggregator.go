// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"errors"
	"io"
	"os"
	"strings"
)

const (
	// LineEnding terminates every line of a report. Monitoring systems that
	// consume plugin output expect CR LF regardless of platform.
	LineEnding = "\r\n"

	// BlockIndent prefixes each message of a multi-message block.
	BlockIndent = "    "

	// ReportOK is the entire report when nothing has been recorded.
	ReportOK = "OK"
)

var (
	// ErrNilOutput is returned by WithOutput when given a nil writer.
	ErrNilOutput = errors.New("the report output cannot be nil")

	// ErrNilExit is returned by WithExit when given a nil exit function.
	ErrNilExit = errors.New("the exit function cannot be nil")
)

// Aggregator accumulates the findings of a single probe run and produces the
// plugin output and exit code from them.
//
// Findings are kept in three buckets: CRITICAL, WARNING, and UNKNOWN. Within a
// bucket, messages keep the order in which they were added. Nothing is ever
// removed from a bucket.
//
// The zero value is ready to use and reports to os.Stdout, exiting via os.Exit.
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	critical []string
	warning  []string
	unknown  []string

	listeners Listeners

	// output is where Finish writes the report. If unset, os.Stdout is used.
	output io.Writer

	// exit terminates the process. If unset, os.Exit is used.
	//
	// Tests replace this to observe the exit code.
	exit func(int)
}

// AggregatorOption is a configurable option for tailoring an Aggregator.
type AggregatorOption interface {
	apply(*Aggregator) error
}

type aggregatorOptionFunc func(*Aggregator) error

func (f aggregatorOptionFunc) apply(a *Aggregator) error { return f(a) }

// WithOutput sets the writer that Finish renders the report to.
// By default, os.Stdout is used.
func WithOutput(w io.Writer) AggregatorOption {
	return aggregatorOptionFunc(func(a *Aggregator) error {
		if w == nil {
			return ErrNilOutput
		}

		a.output = w
		return nil
	})
}

// WithExit sets the function Finish uses to terminate the process.
// By default, os.Exit is used.
func WithExit(exit func(int)) AggregatorOption {
	return aggregatorOptionFunc(func(a *Aggregator) error {
		if exit == nil {
			return ErrNilExit
		}

		a.exit = exit
		return nil
	})
}

// WithListeners adds listeners that receive each record as it is added.
func WithListeners(ls ...Listener) AggregatorOption {
	return aggregatorOptionFunc(func(a *Aggregator) error {
		a.listeners = append(a.listeners, ls...)
		return nil
	})
}

// NewAggregator constructs an empty Aggregator using the supplied options.
func NewAggregator(opts ...AggregatorOption) (*Aggregator, error) {
	a := new(Aggregator)
	for _, o := range opts {
		if err := o.apply(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// AddRecord appends text to the bucket for the given Status. Only
// StatusCritical and StatusWarning have buckets of their own. Any other
// value, StatusOK included, is stored as StatusUnknown: a caller that
// is confused about severity gets the worst reportable result.
func (a *Aggregator) AddRecord(s Status, text string) {
	switch s {
	case StatusCritical:
		a.critical = append(a.critical, text)

	case StatusWarning:
		a.warning = append(a.warning, text)

	default:
		s = StatusUnknown
		a.unknown = append(a.unknown, text)
	}

	a.listeners.OnRecord(Record{Status: s, Message: text})
}

// AddCritical appends a CRITICAL finding.
func (a *Aggregator) AddCritical(text string) {
	a.AddRecord(StatusCritical, text)
}

// AddWarning appends a WARNING finding.
func (a *Aggregator) AddWarning(text string) {
	a.AddRecord(StatusWarning, text)
}

// AddUnknown appends an UNKNOWN finding.
func (a *Aggregator) AddUnknown(text string) {
	a.AddRecord(StatusUnknown, text)
}

// Critical returns a copy of the CRITICAL messages, in the order they were added.
func (a *Aggregator) Critical() []string {
	return append([]string(nil), a.critical...)
}

// Warning returns a copy of the WARNING messages, in the order they were added.
func (a *Aggregator) Warning() []string {
	return append([]string(nil), a.warning...)
}

// Unknown returns a copy of the UNKNOWN messages, in the order they were added.
func (a *Aggregator) Unknown() []string {
	return append([]string(nil), a.unknown...)
}

// Len returns the total number of findings.
func (a *Aggregator) Len() int {
	return len(a.unknown) + len(a.critical) + len(a.warning)
}

// Records returns a snapshot of every finding in report order: UNKNOWN,
// then CRITICAL, then WARNING.
func (a *Aggregator) Records() Records {
	rs := make([]Record, 0, a.Len())
	for _, b := range a.blocks() {
		for _, m := range b.messages {
			rs = append(rs, Record{Status: b.status, Message: m})
		}
	}

	return AsRecords(rs...)
}

// Status resolves the overall result from which buckets are non-empty.
// A single UNKNOWN finding outranks any number of CRITICAL or WARNING
// findings, and so on down.
func (a *Aggregator) Status() Status {
	switch {
	case len(a.unknown) > 0:
		return StatusUnknown

	case len(a.critical) > 0:
		return StatusCritical

	case len(a.warning) > 0:
		return StatusWarning

	default:
		return StatusOK
	}
}

// ExitCode returns the process exit code for the overall result.
func (a *Aggregator) ExitCode() int {
	return a.Status().ExitCode()
}

// block is one labeled bucket, as it appears in a report.
type block struct {
	status   Status
	messages []string
}

// blocks returns the buckets in report order. The most severe category
// is shown first.
func (a *Aggregator) blocks() []block {
	return []block{
		{status: StatusUnknown, messages: a.unknown},
		{status: StatusCritical, messages: a.critical},
		{status: StatusWarning, messages: a.warning},
	}
}

// FormatBlock renders one labeled group of messages. A single message is
// rendered inline after the label. Otherwise the label is written as a header
// line followed by each message on its own indented line. Every line ends
// with LineEnding.
func FormatBlock(label string, messages []string) string {
	var sb strings.Builder
	if len(messages) == 1 {
		sb.WriteString(label)
		sb.WriteString(" ")
		sb.WriteString(messages[0])
		sb.WriteString(LineEnding)
		return sb.String()
	}

	sb.WriteString(label)
	sb.WriteString(":")
	sb.WriteString(LineEnding)
	for _, m := range messages {
		sb.WriteString(BlockIndent)
		sb.WriteString(m)
		sb.WriteString(LineEnding)
	}

	return sb.String()
}

// Report renders the plugin output: the UNKNOWN, CRITICAL, and WARNING blocks,
// in that order, skipping empty ones. With no findings at all, the report is
// exactly ReportOK.
func (a *Aggregator) Report() string {
	if a.Len() == 0 {
		return ReportOK
	}

	var sb strings.Builder
	for _, b := range a.blocks() {
		if len(b.messages) > 0 {
			sb.WriteString(FormatBlock(b.status.String(), b.messages))
		}
	}

	return sb.String()
}

// WriteTo writes the report to w. The bare ReportOK line is terminated with
// LineEnding so that every line written ends the same way.
func (a *Aggregator) WriteTo(w io.Writer) (int64, error) {
	report := a.Report()
	if !strings.HasSuffix(report, LineEnding) {
		report += LineEnding
	}

	n, err := io.WriteString(w, report)
	return int64(n), err
}

// Finish writes the report to the configured output and then terminates the
// process with ExitCode. A failure to write the report does not change the
// exit code. When a custom exit function returns, so does Finish.
func (a *Aggregator) Finish() {
	output := a.output
	if output == nil {
		output = os.Stdout
	}

	exit := a.exit
	if exit == nil {
		exit = os.Exit
	}

	_, _ = a.WriteTo(output)
	exit(a.ExitCode())
}
