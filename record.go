// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"iter"
)

// Recorder is the sink an Evaluator writes its findings into. Aggregator
// is the usual implementation.
type Recorder interface {
	// AddRecord appends a message under the given Status.
	AddRecord(Status, string)
}

// Record is a single finding held by an Aggregator. A Record is never
// StatusOK, as the absence of records is what OK means.
type Record struct {
	// Status is the severity bucket this record was stored under.
	Status Status `json:"status" yaml:"status"`

	// Message is the diagnostic text, without any label or line ending.
	Message string `json:"message" yaml:"message"`
}

// Records is an immutable sequence of Record values. The zero value is
// an empty sequence.
type Records struct {
	rs []Record
}

// AsRecords produces a Records sequence from the given records. The
// slice is retained, so callers must not modify it afterward.
func AsRecords(rs ...Record) Records {
	return Records{
		rs: rs,
	}
}

// Len returns the number of records.
func (r Records) Len() int {
	return len(r.rs)
}

// Get returns the record at the given index. This method panics if
// the index is out of range.
func (r Records) Get(i int) Record {
	return r.rs[i]
}

// All iterates over each record in order.
func (r Records) All() iter.Seq[Record] {
	return func(f func(Record) bool) {
		for _, rec := range r.rs {
			if !f(rec) {
				return
			}
		}
	}
}

// Status returns the worst status among these records, or StatusOK if
// there are none.
func (r Records) Status() (s Status) {
	for _, rec := range r.rs {
		s = Worst(s, rec.Status)
	}

	return
}
