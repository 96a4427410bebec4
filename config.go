// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies how a configured check classifies its observed values.
type Kind string

const (
	// KindEnum classifies each observed value by set membership.
	KindEnum Kind = "enum"

	// KindAscending classifies a number where larger is worse.
	KindAscending Kind = "ascending"

	// KindDescending classifies a number where smaller is worse.
	KindDescending Kind = "descending"
)

// ErrNoSuchCheck is returned by Config.Check when no check has the given name.
var ErrNoSuchCheck = errors.New("no such check")

// Config is the top-level structure of a YAML rules file.
type Config struct {
	Checks []CheckConfig `yaml:"checks"`
}

// MetricSource selects a series from a metrics exposition as the observed
// value of a check.
type MetricSource struct {
	// Name is the metric family name.
	Name string `yaml:"name"`

	// Labels must all be present, with these values, on a matching series.
	Labels map[string]string `yaml:"labels"`
}

// CheckConfig describes one check. Which fields apply depends on Kind.
type CheckConfig struct {
	// Name identifies this check on the command line. Names must be unique.
	Name string `yaml:"name"`

	// Kind is one of: enum | ascending | descending.
	Kind Kind `yaml:"kind"`

	// Prefix and Suffix decorate every recorded message.
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`

	// Units is appended to numbers in messages. Numeric kinds only.
	Units string `yaml:"units"`

	// Warning and Critical are the thresholds for numeric kinds. Either may
	// be omitted.
	Warning  *float64 `yaml:"warning"`
	Critical *float64 `yaml:"critical"`

	// OKValues through UnknownValues are the sets for KindEnum.
	OKValues       []string `yaml:"ok_values"`
	WarningValues  []string `yaml:"warning_values"`
	CriticalValues []string `yaml:"critical_values"`
	UnknownValues  []string `yaml:"unknown_values"`

	// Default is the result for an enum value found in no set.
	// It defaults to UNKNOWN.
	Default *Status `yaml:"default"`

	// Empty is the result for an enum check given no values at all.
	// It defaults to UNKNOWN.
	Empty *Status `yaml:"empty"`

	// Metric optionally names the series that supplies the observed value.
	Metric *MetricSource `yaml:"metric"`
}

// UnmarshalYAML decodes a Status from its label, ignoring case.
func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var label string
	if err := value.Decode(&label); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(label))
}

// MarshalYAML encodes a Status as its label.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// LoadConfig reads a YAML rules file from disk.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}

	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes and validates a YAML rules document.
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	seen := make(map[string]bool, len(cfg.Checks))
	for i, c := range cfg.Checks {
		if c.Name == "" {
			return fmt.Errorf("checks[%d]: name is required", i)
		}

		if seen[c.Name] {
			return fmt.Errorf("check %q is defined more than once", c.Name)
		}

		seen[c.Name] = true
		if err := c.validate(); err != nil {
			return fmt.Errorf("check %q: %w", c.Name, err)
		}
	}

	return nil
}

func (c CheckConfig) validate() error {
	hasSets := len(c.OKValues)+len(c.WarningValues)+len(c.CriticalValues)+len(c.UnknownValues) > 0
	hasThresholds := c.Warning != nil || c.Critical != nil

	switch c.Kind {
	case KindEnum:
		if hasThresholds || c.Units != "" {
			return fmt.Errorf("kind %q does not take thresholds or units", c.Kind)
		}

	case KindAscending, KindDescending:
		if hasSets || c.Default != nil || c.Empty != nil {
			return fmt.Errorf("kind %q does not take value sets", c.Kind)
		}

	default:
		return fmt.Errorf("unsupported kind %q (want %s | %s | %s)", c.Kind, KindEnum, KindAscending, KindDescending)
	}

	if c.Metric != nil && c.Metric.Name == "" {
		return errors.New("metric.name is required when metric is set")
	}

	return nil
}

// Check returns the configuration for the named check.
func (cfg *Config) Check(name string) (CheckConfig, error) {
	for _, c := range cfg.Checks {
		if c.Name == name {
			return c, nil
		}
	}

	return CheckConfig{}, fmt.Errorf("%w: %q", ErrNoSuchCheck, name)
}

// EnumRules builds the rule sets for an enum check.
func (c CheckConfig) EnumRules() EnumRules[string] {
	return EnumRules[string]{
		OK:       c.OKValues,
		Warning:  c.WarningValues,
		Critical: c.CriticalValues,
		Unknown:  c.UnknownValues,
		Prefix:   c.Prefix,
		Suffix:   c.Suffix,
	}
}

// NumericRules builds the thresholds for a numeric check.
func (c CheckConfig) NumericRules() NumericRules[float64] {
	nr := NumericRules[float64]{
		Prefix: c.Prefix,
		Suffix: c.Suffix,
		Units:  c.Units,
	}

	if c.Warning != nil {
		nr.Warning = Limit(*c.Warning)
	}

	if c.Critical != nil {
		nr.Critical = Limit(*c.Critical)
	}

	return nr
}

func orUnknown(s *Status) Status {
	if s == nil {
		return StatusUnknown
	}

	return *s
}

// Evaluate classifies the observed values with this check's rules and returns
// the result. An enum check treats observed as a list of values. A numeric
// check classifies every observed value and returns the worst result; a
// missing or unparseable number is recorded as UNKNOWN.
func (c CheckConfig) Evaluate(e *Evaluator, observed ...string) Status {
	switch c.Kind {
	case KindEnum:
		return EvaluateEnumList(e, observed, orUnknown(c.Default), orUnknown(c.Empty), c.EnumRules())

	case KindAscending, KindDescending:
		if len(observed) == 0 {
			return e.Error(errors.New("no value observed"), c.Prefix)
		}

		var worst Status
		for _, o := range observed {
			v, err := strconv.ParseFloat(o, 64)
			if err != nil {
				worst = Worst(worst, e.Error(fmt.Errorf("value %q is not a number", o), c.Prefix))
				continue
			}

			worst = Worst(worst, c.EvaluateNumber(e, v))
		}

		return worst

	default:
		return e.Error(fmt.Errorf("unsupported kind %q", c.Kind), c.Prefix)
	}
}

// EvaluateNumber classifies an already parsed number. Enum checks compare
// its shortest decimal form against their sets.
func (c CheckConfig) EvaluateNumber(e *Evaluator, v float64) Status {
	switch c.Kind {
	case KindAscending:
		return Ascending(e, v, c.NumericRules())

	case KindDescending:
		return Descending(e, v, c.NumericRules())

	default:
		return c.Evaluate(e, strconv.FormatFloat(v, 'f', -1, 64))
	}
}
