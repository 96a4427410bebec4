// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package nagcheck

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("expected")
}

type AggregatorTestSuite struct {
	suite.Suite

	output   bytes.Buffer
	exitCode int
	exited   bool
}

func (suite *AggregatorTestSuite) reset() {
	suite.output.Reset()
	suite.exitCode = -1
	suite.exited = false
}

func (suite *AggregatorTestSuite) SetupTest() {
	suite.reset()
}

func (suite *AggregatorTestSuite) SetupSubTest() {
	suite.reset()
}

func (suite *AggregatorTestSuite) exit(code int) {
	suite.exitCode = code
	suite.exited = true
}

// newAggregator creates an Aggregator that writes to the suite's buffer and
// records its exit code instead of terminating.
func (suite *AggregatorTestSuite) newAggregator(o ...AggregatorOption) *Aggregator {
	o = append(o,
		WithOutput(&suite.output),
		WithExit(suite.exit),
	)

	a, err := NewAggregator(o...)
	suite.Require().NoError(err)
	suite.Require().NotNil(a)
	return a
}

func (suite *AggregatorTestSuite) assertFinish(a *Aggregator, expectedOutput string, expectedCode int) {
	a.Finish()
	suite.True(suite.exited)
	suite.Equal(expectedCode, suite.exitCode)
	suite.Equal(expectedOutput, suite.output.String())
}

func (suite *AggregatorTestSuite) TestNewAggregator() {
	suite.Run("NilOutput", func() {
		a, err := NewAggregator(WithOutput(nil))
		suite.ErrorIs(err, ErrNilOutput)
		suite.Nil(a)
	})

	suite.Run("NilExit", func() {
		a, err := NewAggregator(WithExit(nil))
		suite.ErrorIs(err, ErrNilExit)
		suite.Nil(a)
	})
}

func (suite *AggregatorTestSuite) TestEmpty() {
	a := suite.newAggregator()
	suite.Zero(a.Len())
	suite.Empty(a.Critical())
	suite.Empty(a.Warning())
	suite.Empty(a.Unknown())
	suite.Equal(StatusOK, a.Status())
	suite.Equal(0, a.ExitCode())
	suite.Equal("OK", a.Report())
	suite.Zero(a.Records().Len())
	suite.assertFinish(a, "OK\r\n", 0)
}

func (suite *AggregatorTestSuite) TestZeroValue() {
	var a Aggregator
	a.AddWarning("usable")
	suite.Equal([]string{"usable"}, a.Warning())
	suite.Equal(1, a.ExitCode())
}

func (suite *AggregatorTestSuite) TestAddRecord() {
	testCases := []struct {
		name     string
		status   Status
		critical int
		warning  int
		unknown  int
	}{
		{name: "Critical", status: StatusCritical, critical: 1},
		{name: "Warning", status: StatusWarning, warning: 1},
		{name: "Unknown", status: StatusUnknown, unknown: 1},
		{name: "OKFallsBackToUnknown", status: StatusOK, unknown: 1},
		{name: "OutOfRangeFallsBackToUnknown", status: Status(17), unknown: 1},
	}

	for _, testCase := range testCases {
		suite.Run(testCase.name, func() {
			a := suite.newAggregator()
			a.AddRecord(testCase.status, "text")
			suite.Len(a.Critical(), testCase.critical)
			suite.Len(a.Warning(), testCase.warning)
			suite.Len(a.Unknown(), testCase.unknown)
		})
	}
}

func (suite *AggregatorTestSuite) TestInsertionOrder() {
	a := suite.newAggregator()
	a.AddWarning("first")
	a.AddCritical("only")
	a.AddWarning("second")
	a.AddWarning("third")

	suite.Equal([]string{"first", "second", "third"}, a.Warning())
	suite.Equal([]string{"only"}, a.Critical())

	// the accessors return copies
	a.Warning()[0] = "modified"
	suite.Equal("first", a.Warning()[0])
}

func (suite *AggregatorTestSuite) TestExitCodePrecedence() {
	testCases := []struct {
		name     string
		add      func(*Aggregator)
		expected Status
	}{
		{
			name:     "Nothing",
			add:      func(*Aggregator) {},
			expected: StatusOK,
		},
		{
			name: "ManyWarnings",
			add: func(a *Aggregator) {
				a.AddWarning("1")
				a.AddWarning("2")
				a.AddWarning("3")
			},
			expected: StatusWarning,
		},
		{
			name: "CriticalAfterWarnings",
			add: func(a *Aggregator) {
				a.AddWarning("1")
				a.AddWarning("2")
				a.AddCritical("3")
			},
			expected: StatusCritical,
		},
		{
			name: "CriticalBeforeWarnings",
			add: func(a *Aggregator) {
				a.AddCritical("1")
				a.AddWarning("2")
			},
			expected: StatusCritical,
		},
		{
			name: "OneUnknownOutranksEverything",
			add: func(a *Aggregator) {
				a.AddCritical("1")
				a.AddCritical("2")
				a.AddWarning("3")
				a.AddUnknown("4")
				a.AddCritical("5")
			},
			expected: StatusUnknown,
		},
	}

	for _, testCase := range testCases {
		suite.Run(testCase.name, func() {
			a := suite.newAggregator()
			testCase.add(a)
			suite.Equal(testCase.expected, a.Status())
			suite.Equal(testCase.expected.ExitCode(), a.ExitCode())
		})
	}
}

func (suite *AggregatorTestSuite) TestFormatBlock() {
	suite.Run("Single", func() {
		suite.Equal(
			"WARNING disk is 91% full\r\n",
			FormatBlock("WARNING", []string{"disk is 91% full"}),
		)
	})

	suite.Run("Multiple", func() {
		suite.Equal(
			"CRITICAL:\r\n    one\r\n    two\r\n    three\r\n",
			FormatBlock("CRITICAL", []string{"one", "two", "three"}),
		)
	})

	suite.Run("None", func() {
		suite.Equal("UNKNOWN:\r\n", FormatBlock("UNKNOWN", nil))
	})
}

func (suite *AggregatorTestSuite) TestReport() {
	a := suite.newAggregator()
	a.AddWarning("w1")
	a.AddCritical("c1")
	a.AddWarning("w2")
	a.AddUnknown("u1")

	expected := "UNKNOWN u1\r\n" +
		"CRITICAL c1\r\n" +
		"WARNING:\r\n    w1\r\n    w2\r\n"

	suite.Equal(expected, a.Report())
	suite.assertFinish(a, expected, 3)
}

func (suite *AggregatorTestSuite) TestReportSkipsEmptyBlocks() {
	a := suite.newAggregator()
	a.AddWarning("only a warning")
	suite.Equal("WARNING only a warning\r\n", a.Report())
	suite.assertFinish(a, "WARNING only a warning\r\n", 1)
}

func (suite *AggregatorTestSuite) TestRecords() {
	a := suite.newAggregator()
	a.AddWarning("w")
	a.AddCritical("c")
	a.AddUnknown("u")

	rs := a.Records()
	suite.Require().Equal(3, rs.Len())
	suite.Equal(Record{Status: StatusUnknown, Message: "u"}, rs.Get(0))
	suite.Equal(Record{Status: StatusCritical, Message: "c"}, rs.Get(1))
	suite.Equal(Record{Status: StatusWarning, Message: "w"}, rs.Get(2))
	suite.Equal(StatusUnknown, rs.Status())
	suite.Panics(func() {
		rs.Get(3)
	})

	var count int
	for range rs.All() {
		count++
		break
	}

	suite.Equal(1, count, "All needs to honor early return")
}

func (suite *AggregatorTestSuite) TestListeners() {
	var (
		first  []Record
		second []Record
	)

	a := suite.newAggregator(
		WithListeners(
			ListenerFunc(func(r Record) { first = append(first, r) }),
			ListenerFunc(func(r Record) { second = append(second, r) }),
		),
	)

	a.AddCritical("c")
	a.AddRecord(StatusOK, "confused")

	expected := []Record{
		{Status: StatusCritical, Message: "c"},
		{Status: StatusUnknown, Message: "confused"},
	}

	suite.Equal(expected, first)
	suite.Equal(expected, second)
}

func (suite *AggregatorTestSuite) TestFinishWriteError() {
	a, err := NewAggregator(
		WithOutput(failingWriter{}),
		WithExit(suite.exit),
	)

	suite.Require().NoError(err)
	a.AddCritical("still critical")
	a.Finish()
	suite.True(suite.exited)
	suite.Equal(2, suite.exitCode)
}

func (suite *AggregatorTestSuite) TestIndependentAggregators() {
	a1 := suite.newAggregator()
	a2 := suite.newAggregator()
	a1.AddCritical("only in a1")
	suite.Equal(StatusCritical, a1.Status())
	suite.Equal(StatusOK, a2.Status())
}

func TestAggregator(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
