package tools

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbridge/internal/value"
)

func TestNewToolCallGeneratesIDs(t *testing.T) {
	a := NewToolCall("calculator", nil)
	b := NewToolCall("calculator", nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Parameters, "nil parameters should become an empty object")
}

func TestNewToolCallCopiesParameters(t *testing.T) {
	params := value.Object{"a": value.Integer(1)}
	call := NewToolCallWithID("id", "t", params)

	params["a"] = value.Integer(2)
	assert.True(t, call.Parameters["a"].Equal(value.Integer(1)))
}

func TestParseToolCall(t *testing.T) {
	call, err := ParseToolCall([]byte(`{"id":"c-7","name":"calculator","parameters":{"operation":"add","operands":[1,2]}}`))
	require.NoError(t, err)

	want := NewToolCallWithID("c-7", "calculator", value.Object{
		"operation": value.String("add"),
		"operands":  value.Array(value.Integer(1), value.Integer(2)),
	})
	if diff := cmp.Diff(want, call); diff != "" {
		t.Errorf("ParseToolCall mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseToolCall([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestParseToolCallsFillsMissing(t *testing.T) {
	calls, err := ParseToolCalls([]byte(`[{"name":"a"},{"id":"x","name":"b","parameters":null}]`))
	require.NoError(t, err)
	require.Len(t, calls, 2)

	assert.NotEmpty(t, calls[0].ID)
	assert.Equal(t, "a", calls[0].Name)
	assert.NotNil(t, calls[0].Parameters)
	assert.Equal(t, "x", calls[1].ID)
	assert.NotNil(t, calls[1].Parameters)
}

func TestToolResultJSON(t *testing.T) {
	ok := ToolResult{
		Call:       NewToolCallWithID("1", "echo", nil),
		Result:     value.ObjectOf(value.Object{"echo": value.String("hi")}),
		DurationMs: 3,
	}
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"call":{"id":"1","name":"echo","parameters":{}},"result":{"echo":"hi"},"duration_ms":3}`, string(data))

	failed := failedResult(NewToolCallWithID("2", "ghost", nil), NotFound("ghost"), 0)
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"call":{"id":"2","name":"ghost","parameters":{}},"result":{},"error":"Tool not found: ghost","duration_ms":0}`, string(data))

	var decoded ToolResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.IsSuccess())
	assert.Nil(t, decoded.Err())
	assert.True(t, decoded.Call.Equal(failed.Call))
}
