package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"toolbridge/internal/value"
)

// ToolCall is a request to run one tool. ID only correlates a call with its
// result; the registry does not enforce uniqueness.
type ToolCall struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Parameters value.Object `json:"parameters"`
}

// NewToolCall builds a call with a generated ID.
func NewToolCall(name string, params value.Object) ToolCall {
	return NewToolCallWithID(uuid.NewString(), name, params)
}

// NewToolCallWithID builds a call with the given ID. params is copied.
func NewToolCallWithID(id, name string, params value.Object) ToolCall {
	if params == nil {
		params = value.Object{}
	}
	return ToolCall{ID: id, Name: name, Parameters: params.Clone()}
}

// Equal reports whether c and other carry the same ID, name and parameters.
func (c ToolCall) Equal(other ToolCall) bool {
	return c.ID == other.ID && c.Name == other.Name && c.Parameters.Equal(other.Parameters)
}

// ParseToolCall decodes a single call from JSON, generating an ID when the
// document has none.
func ParseToolCall(data []byte) (ToolCall, error) {
	var raw ToolCall
	if err := json.Unmarshal(data, &raw); err != nil {
		return ToolCall{}, fmt.Errorf("invalid tool call: %w", err)
	}
	return normalizeCall(raw), nil
}

// ParseToolCalls decodes a JSON array of calls, generating missing IDs.
func ParseToolCalls(data []byte) ([]ToolCall, error) {
	var raw []ToolCall
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid tool call batch: %w", err)
	}
	calls := make([]ToolCall, len(raw))
	for i, c := range raw {
		calls[i] = normalizeCall(c)
	}
	return calls, nil
}

func normalizeCall(c ToolCall) ToolCall {
	if c.ID == "" {
		return NewToolCall(c.Name, c.Parameters)
	}
	return NewToolCallWithID(c.ID, c.Name, c.Parameters)
}

// ToolResult is the outcome of a call. A non-empty Error marks failure and
// is authoritative; Result is an empty object whenever the call failed.
type ToolResult struct {
	// Call echoes the request verbatim.
	Call ToolCall `json:"call"`

	// Result is the encoded tool output.
	Result value.Value `json:"result"`

	// Error is the rendered failure message, if any.
	Error string `json:"error,omitempty"`

	// DurationMs is how long dispatch took.
	DurationMs int64 `json:"duration_ms"`

	err error
}

// IsSuccess returns true if the tool executed without error.
func (r ToolResult) IsSuccess() bool {
	return r.Error == ""
}

// Err returns the in-process error behind Error, so hosts can inspect its kind
// with errors.Is. It is nil on success and for results decoded from JSON.
func (r ToolResult) Err() error {
	return r.err
}

func failedResult(call ToolCall, err error, durationMs int64) ToolResult {
	return ToolResult{
		Call:       call,
		Result:     value.EmptyObject(),
		Error:      err.Error(),
		DurationMs: durationMs,
		err:        err,
	}
}
