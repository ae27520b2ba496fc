// Package tools bridges an open, dynamically-typed call boundary (a tool name
// plus a loosely-typed parameter object, typically decoded from model output)
// to statically-typed tool implementations.
//
// Each tool declares typed Parameters and Result types. Adapt wraps a tool
// behind the uniform Handler interface, and the Registry dispatches calls to
// handlers by name:
//
//	ToolCall → Registry.Execute → Handler (decode → Tool.Execute → encode) → ToolResult
package tools

import (
	"context"
)

// Property describes a single parameter property.
type Property struct {
	// Type is one of string, number, integer, boolean, array or object.
	// An empty Type accepts any value.
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array element schema (required for type="array")
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema for array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// ToolSchema is the declarative shape of a tool's parameter object.
// Parameters are conformed against it before being decoded into the tool's
// typed Parameters.
type ToolSchema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// Tool is the typed contract every tool implements. P is the parameter type,
// decoded from the call's raw parameter object; R is the result type, encoded
// back into a dynamic value.
//
// Execute may block and should honor ctx. Returning a *ToolError selects the
// failure kind; any other error is reported as ErrExecutionFailed.
type Tool[P, R any] interface {
	// Name is the unique registry key. It must be constant per tool.
	Name() string

	// Description explains what the tool does.
	Description() string

	// Schema describes the parameter object.
	Schema() ToolSchema

	// Execute runs the tool.
	Execute(ctx context.Context, params P) (R, error)
}

// Descriptor is the public identity of a registered tool.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Func adapts a plain function to the Tool interface.
type Func[P, R any] struct {
	name        string
	description string
	schema      ToolSchema
	fn          func(ctx context.Context, params P) (R, error)
}

// NewFunc returns a Tool backed by fn.
func NewFunc[P, R any](name, description string, schema ToolSchema, fn func(ctx context.Context, params P) (R, error)) *Func[P, R] {
	return &Func[P, R]{name: name, description: description, schema: schema, fn: fn}
}

func (f *Func[P, R]) Name() string        { return f.name }
func (f *Func[P, R]) Description() string { return f.description }
func (f *Func[P, R]) Schema() ToolSchema  { return f.schema }

func (f *Func[P, R]) Execute(ctx context.Context, params P) (R, error) {
	return f.fn(ctx, params)
}
