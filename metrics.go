// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"errors"
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ErrNoSuchMetric indicates that a metrics exposition has no series
// matching a requested name and labels.
var ErrNoSuchMetric = errors.New("no such metric")

// Families holds the metric families decoded from a Prometheus text exposition,
// keyed by family name.
type Families map[string]*dto.MetricFamily

// ParseMetrics decodes a Prometheus text exposition. A partial parse that
// produced at least one family is still a success.
func ParseMetrics(r io.Reader) (Families, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}

	return Families(mfs), nil
}

// hasLabels tests whether m carries every name/value pair in labels.
func hasLabels(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}

	return matched == len(labels)
}

// Value sums the counter, gauge, and untyped samples of the named family whose
// labels include all of the given labels. ErrNoSuchMetric is returned if the
// family is absent or no series matches.
func (fs Families) Value(name string, labels map[string]string) (float64, error) {
	mf := fs[name]
	if mf == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchMetric, name)
	}

	var (
		total float64
		found bool
	)

	for _, m := range mf.GetMetric() {
		if !hasLabels(m, labels) {
			continue
		}

		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
			found = true

		case m.Gauge != nil:
			total += m.Gauge.GetValue()
			found = true

		case m.Untyped != nil:
			total += m.Untyped.GetValue()
			found = true
		}
	}

	if !found {
		return 0, fmt.Errorf("%w: %s%v", ErrNoSuchMetric, name, labels)
	}

	return total, nil
}

// EvaluateMetric classifies the series named by the check's metric source.
// A check without a metric source, or a series that cannot be found, is
// recorded as UNKNOWN.
func (c CheckConfig) EvaluateMetric(e *Evaluator, fs Families) Status {
	if c.Metric == nil {
		return e.Error(fmt.Errorf("check %q has no metric source", c.Name), c.Prefix)
	}

	v, err := fs.Value(c.Metric.Name, c.Metric.Labels)
	if err != nil {
		return e.Error(err, c.Prefix)
	}

	return c.EvaluateNumber(e, v)
}
