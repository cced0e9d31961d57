package reporter

import (
	"bytes"
	"testing"

	"dexit/pkg/dexit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLive_GenerateReportStopsSpinnerAndPrintsSummary(t *testing.T) {
	var buf bytes.Buffer
	live := NewLive()
	live.Out = &buf

	live.LogTestSetBegin(&dexit.TestSetEntry{ID: "$.api"})
	live.LogTestBegin(&dexit.TestSetEntry{ID: "$.api"}, &dexit.TestEntry{Name: "t1"})
	require.True(t, live.started)

	require.NoError(t, live.GenerateReport(&dexit.CompleteReport{TestCount: 1, Duration: 0}))
	assert.Contains(t, buf.String(), "1 tests passed")
}

func TestLive_GenerateReportWithoutAnyEventsDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	live := NewLive()
	live.Out = &buf

	require.NoError(t, live.GenerateReport(&dexit.CompleteReport{}))
	assert.Contains(t, buf.String(), "0 tests passed")
}

func TestLive_RootSetBeginDoesNotStartSpinner(t *testing.T) {
	live := NewLive()
	live.LogTestSetBegin(&dexit.TestSetEntry{ID: "$"})
	assert.False(t, live.started)
}
