// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Command nagcheck is a generic monitoring plugin. It classifies observed values
// against the checks defined in a YAML rules file and reports the result using
// plugin output and exit code conventions.
//
//	nagcheck -config rules.yaml load=3.2 service=running,starting
//	curl -s host:9100/metrics | nagcheck -config rules.yaml -metrics -
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xmidt-org/nagcheck"
)

func main() {
	run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
}

// observation is one check=value argument.
type observation struct {
	name   string
	values []string
}

// parseObservation splits "name=v1,v2" into a check name and its values.
// An empty value list is preserved so enum checks can report it.
func parseObservation(arg string) (observation, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return observation{}, fmt.Errorf("argument %q is not of the form check=value", arg)
	}

	o := observation{name: name}
	if raw != "" {
		o.values = strings.Split(raw, ",")
	}

	return o, nil
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) {
	fs := flag.NewFlagSet("nagcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "/etc/nagcheck.yaml", "The YAML rules file")
	metricsFile := fs.String("metrics", "", "A Prometheus text exposition to read metric checks from, or - for stdin")
	verbose := fs.Bool("v", false, "Log each finding to stderr")

	logger := newLogger(stderr, false)
	agg, err := nagcheck.NewAggregator(
		nagcheck.WithOutput(stdout),
		nagcheck.WithExit(exit),
		nagcheck.WithListeners(nagcheck.ListenerFunc(func(r nagcheck.Record) {
			logger.Debug("finding recorded", "status", r.Status, "message", r.Message)
		})),
	)

	if err != nil {
		// only possible with nil writers or exit functions
		panic(err)
	}

	e := nagcheck.NewEvaluator(agg)
	if err := fs.Parse(args); err != nil {
		e.Error(err, "usage: ")
		agg.Finish()
		return
	}

	logger = newLogger(stderr, *verbose)
	cfg, err := nagcheck.LoadConfig(*configFile)
	if err != nil {
		logger.Error("failed to load config", "config", *configFile, "err", err)
		e.Error(err, "")
		agg.Finish()
		return
	}

	var checks []nagcheck.Check
	for _, arg := range fs.Args() {
		checks = append(checks, observedCheck(cfg, arg))
	}

	if *metricsFile != "" {
		checks = append(checks, metricChecks(cfg, *metricsFile, stdin))
	}

	if len(checks) == 0 {
		e.Error(errors.New("no observations given"), "usage: ")
	}

	logger.Debug("running checks", "config", *configFile, "count", len(checks))
	e.Run(context.Background(), checks...)
	logger.Debug("checks complete", "status", agg.Status(), "findings", agg.Len())
	agg.Finish()
}

// observedCheck evaluates one check=value argument.
func observedCheck(cfg *nagcheck.Config, arg string) nagcheck.Check {
	return func(_ context.Context, e *nagcheck.Evaluator) error {
		o, err := parseObservation(arg)
		if err != nil {
			return err
		}

		c, err := cfg.Check(o.name)
		if err != nil {
			return err
		}

		c.Evaluate(e, o.values...)
		return nil
	}
}

// metricChecks evaluates every configured check with a metric source against
// the exposition read from path, or from stdin when path is "-".
func metricChecks(cfg *nagcheck.Config, path string, stdin io.Reader) nagcheck.Check {
	return func(_ context.Context, e *nagcheck.Evaluator) error {
		r := stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}

			defer f.Close()
			r = f
		}

		fams, err := nagcheck.ParseMetrics(r)
		if err != nil {
			return err
		}

		for _, c := range cfg.Checks {
			if c.Metric != nil {
				c.EvaluateMetric(e, fams)
			}
		}

		return nil
	}
}
