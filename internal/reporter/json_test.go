package reporter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"dexit/pkg/dexit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_GenerateReportEmitsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	r := &JSON{Out: &buf}

	complete := &dexit.CompleteReport{
		Sets: map[string]*dexit.TestSetReport{
			"api": {
				Set:       &dexit.TestSetEntry{ID: "$.api"},
				TestCount: 1,
				Tests: []*dexit.TestReport{
					{
						Test: &dexit.TestEntry{Name: "t1"},
						Tasks: []*dexit.TaskReport{
							{Label: "echo", Errors: []error{assertErr("boom")}},
						},
					},
				},
			},
		},
		Duration:   2 * time.Second,
		TestCount:  1,
		ErrorCount: 1,
	}

	require.NoError(t, r.GenerateReport(complete))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(1), decoded["testCount"])
	assert.Equal(t, "2s", decoded["duration"])

	sets := decoded["sets"].(map[string]interface{})
	api := sets["api"].(map[string]interface{})
	tests := api["tests"].([]interface{})
	require.Len(t, tests, 1)
	task := tests[0].(map[string]interface{})["tasks"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"boom"}, task["errors"])
}

func TestJSON_CollectsValidationErrorsAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	r := &JSON{Out: &buf}

	r.LogValidationErrors([]dexit.ValidationError{{Message: "bad document"}})
	require.NoError(t, r.GenerateReport(&dexit.CompleteReport{}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded["validationErrors"], "bad document")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
