package reporter

import (
	"bytes"
	"testing"
	"time"

	"dexit/pkg/dexit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_LogsSetAndTestLifecycle(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	set := &dexit.TestSetEntry{ID: "$.api"}
	c.LogTestSetBegin(set)
	c.LogTestComplete(set, &dexit.TestEntry{Name: "t1"}, &dexit.TestReport{})
	c.LogTestSetComplete(set, &dexit.TestSetReport{})

	output := buf.String()
	assert.Contains(t, output, "$.api")
	assert.Contains(t, output, "t1")
}

func TestConsole_RootSetIsSilent(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	root := &dexit.TestSetEntry{ID: "$"}
	c.LogTestSetBegin(root)
	c.LogTestSetComplete(root, &dexit.TestSetReport{})

	assert.Empty(t, buf.String())
}

func TestConsole_SkipIsReported(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.LogTestSetSkip(&dexit.TestSetEntry{ID: "$.skipped", TestCount: 2})
	assert.Contains(t, buf.String(), "$.skipped")
	assert.Contains(t, buf.String(), "2 tests skipped")
}

func TestConsole_VerboseLogsTaskBegin(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf, Verbose: true}

	c.LogTaskBegin(&dexit.TestSetEntry{ID: "$.api"}, &dexit.TestEntry{Name: "t1"}, &dexit.Task{Do: "core.echo"})
	assert.Contains(t, buf.String(), "core.echo")
}

func TestConsole_NonVerboseSkipsTaskBegin(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	c.LogTaskBegin(&dexit.TestSetEntry{ID: "$.api"}, &dexit.TestEntry{Name: "t1"}, &dexit.Task{Do: "core.echo"})
	assert.Empty(t, buf.String())
}

func TestTruncateLabel_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "core.echo", truncateLabel("core.echo", 80))
}

func TestTruncateLabel_CollapsesNewlinesAndTruncates(t *testing.T) {
	assert.Equal(t, "a b...", truncateLabel("a\nb c d", 6))
}

func TestConsole_GenerateReportSummarizesPassFailSkip(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	complete := &dexit.CompleteReport{
		Sets: map[string]*dexit.TestSetReport{
			"api": {
				Tests: []*dexit.TestReport{
					{Tasks: []*dexit.TaskReport{{Errors: []error{assertErr("boom")}}}},
					{},
				},
			},
		},
		TestCount:    2,
		SkippedCount: 0,
		ErrorCount:   1,
		Duration:     time.Second,
	}

	require.NoError(t, c.GenerateReport(complete))
	output := buf.String()
	assert.Contains(t, output, "1 passed, 1 failed")
}
