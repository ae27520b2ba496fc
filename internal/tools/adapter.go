package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"toolbridge/internal/logging"
	"toolbridge/internal/value"
)

// Handler is a type-erased tool: it executes against raw parameter objects
// and returns dynamic values. The registry holds tools of different concrete
// types behind this interface.
type Handler interface {
	Descriptor() Descriptor
	Execute(ctx context.Context, params value.Object) (value.Value, error)
}

// adapter wraps a typed Tool as a Handler. It is stateless across calls; the
// tool, its descriptor and its schema are captured once at construction.
type adapter[P, R any] struct {
	tool   Tool[P, R]
	desc   Descriptor
	schema ToolSchema
}

// Adapt wraps tool behind the Handler interface.
func Adapt[P, R any](tool Tool[P, R]) Handler {
	return &adapter[P, R]{
		tool:   tool,
		desc:   Descriptor{Name: tool.Name(), Description: tool.Description()},
		schema: tool.Schema(),
	}
}

func (a *adapter[P, R]) Descriptor() Descriptor { return a.desc }

// Execute decodes params into P, invokes the tool and encodes its result.
// Every error it returns is a *ToolError.
func (a *adapter[P, R]) Execute(ctx context.Context, params value.Object) (value.Value, error) {
	typed, err := a.decode(params)
	if err != nil {
		logging.ToolsDebug("%s: decode failed: %v", a.desc.Name, err)
		return value.Null(), err
	}

	result, err := a.invoke(ctx, typed)
	if err != nil {
		logging.ToolsDebug("%s: execution failed: %v", a.desc.Name, err)
		return value.Null(), err
	}

	return a.encode(result)
}

func (a *adapter[P, R]) decode(raw value.Object) (P, error) {
	var params P

	conformed, err := a.schema.Conform(raw)
	if err != nil {
		return params, wrapError(ErrInvalidParameters, err)
	}

	data, err := json.Marshal(conformed)
	if err != nil {
		return params, wrapError(ErrInvalidParameters, err)
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, &ToolError{Kind: ErrInvalidParameters, Detail: describeDecodeError(err), Cause: err}
	}
	return params, nil
}

// invoke runs the tool, passing categorized failures through unchanged and
// reporting everything else, panics included, as ErrExecutionFailed.
func (a *adapter[P, R]) invoke(ctx context.Context, params P) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.ToolsWarn("%s: recovered panic: %v", a.desc.Name, r)
			err = ExecutionFailedf("panic: %v", r)
		}
	}()

	result, err = a.tool.Execute(ctx, params)
	if err == nil {
		return result, nil
	}

	var te *ToolError
	if errors.As(err, &te) {
		return result, err
	}
	return result, wrapError(ErrExecutionFailed, err)
}

func (a *adapter[P, R]) encode(result R) (value.Value, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return value.Null(), wrapError(ErrSerialization, err)
	}
	v, err := value.Parse(data)
	if err != nil {
		return value.Null(), wrapError(ErrSerialization, err)
	}
	return v, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "parameters"
		}
		return fmt.Sprintf("%s: cannot use %s as %s", field, typeErr.Value, typeErr.Type)
	}
	return err.Error()
}
