// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

// Listener is a sink for records as they are appended to an Aggregator.
type Listener interface {
	// OnRecord receives the Record exactly as it was stored, after any
	// fallback to StatusUnknown. This method must not panic and must not
	// add records to the Aggregator that dispatched it.
	OnRecord(Record)
}

// ListenerFunc is a closure type that implements Listener.
type ListenerFunc func(Record)

// OnRecord invokes this closure.
func (lf ListenerFunc) OnRecord(r Record) { lf(r) }

// Listeners is an aggregate Listener.
type Listeners []Listener

// OnRecord dispatches the given record to each listener
// in this aggregate.
func (ls Listeners) OnRecord(r Record) {
	for _, l := range ls {
		l.OnRecord(r)
	}
}
