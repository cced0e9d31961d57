package reporter

import (
	"bytes"
	"testing"

	"dexit/pkg/dexit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_RendersOneRowPerSet(t *testing.T) {
	var buf bytes.Buffer
	r := &Table{Out: &buf}

	set := &dexit.TestSetEntry{ID: "$.api", TestCount: 2}
	r.LogTestSetComplete(set, &dexit.TestSetReport{TestCount: 2})

	require.NoError(t, r.GenerateReport(&dexit.CompleteReport{TestCount: 2}))

	output := buf.String()
	assert.Contains(t, output, "$.api")
	assert.Contains(t, output, "TOTAL")
}

func TestTable_SkippedSetRecordsSkippedRow(t *testing.T) {
	var buf bytes.Buffer
	r := &Table{Out: &buf}

	r.LogTestSetSkip(&dexit.TestSetEntry{ID: "$.skipped", TestCount: 3})
	require.NoError(t, r.GenerateReport(&dexit.CompleteReport{SkippedCount: 3}))

	assert.Contains(t, buf.String(), "$.skipped")
}

func TestTable_RootSetIsNotRendered(t *testing.T) {
	var buf bytes.Buffer
	r := &Table{Out: &buf}

	r.LogTestSetComplete(&dexit.TestSetEntry{ID: "$"}, &dexit.TestSetReport{})
	require.NoError(t, r.GenerateReport(&dexit.CompleteReport{}))

	assert.Len(t, r.rows, 0)
}
