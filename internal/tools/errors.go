package tools

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the registry. Every failure of a call carries
// exactly one of these.
var (
	// ErrToolNotFound is returned when a tool is not registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidParameters is returned when raw parameters cannot be decoded
	// into the tool's typed parameters.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrExecutionFailed is returned when the tool's own logic fails.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrSerialization is returned when a typed result cannot be converted
	// back into a dynamic value.
	ErrSerialization = errors.New("serialization error")
)

// Decode failure details, wrapped inside ErrInvalidParameters.
var (
	// ErrMissingRequiredArg is returned when a required argument is missing.
	ErrMissingRequiredArg = errors.New("missing required argument")

	// ErrInvalidArgType is returned when an argument has the wrong type.
	ErrInvalidArgType = errors.New("invalid argument type")

	// ErrInvalidEnumValue is returned when an argument is not one of its
	// allowed literals.
	ErrInvalidEnumValue = errors.New("value not in enum")
)

var kindTitles = map[error]string{
	ErrToolNotFound:      "Tool not found",
	ErrInvalidParameters: "Invalid parameters",
	ErrExecutionFailed:   "Execution failed",
	ErrSerialization:     "Serialization error",
}

// ToolError is a categorized tool failure. Its message is what callers see in
// ToolResult.Error; Kind is one of the Err* sentinels above.
type ToolError struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *ToolError) Error() string {
	title, ok := kindTitles[e.Kind]
	if !ok {
		title = e.Kind.Error()
	}
	if e.Detail == "" {
		return title
	}
	return title + ": " + e.Detail
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *ToolError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NotFound reports that no tool is registered under name.
func NotFound(name string) *ToolError {
	return &ToolError{Kind: ErrToolNotFound, Detail: name}
}

// InvalidParameters reports a structural decode failure.
func InvalidParameters(detail string) *ToolError {
	return &ToolError{Kind: ErrInvalidParameters, Detail: detail}
}

// InvalidParametersf is InvalidParameters with printf formatting.
func InvalidParametersf(format string, args ...any) *ToolError {
	return InvalidParameters(fmt.Sprintf(format, args...))
}

// ExecutionFailed reports a domain failure raised by a tool.
func ExecutionFailed(detail string) *ToolError {
	return &ToolError{Kind: ErrExecutionFailed, Detail: detail}
}

// ExecutionFailedf is ExecutionFailed with printf formatting.
func ExecutionFailedf(format string, args ...any) *ToolError {
	return ExecutionFailed(fmt.Sprintf(format, args...))
}

// SerializationError reports a result that could not be encoded.
func SerializationError(detail string) *ToolError {
	return &ToolError{Kind: ErrSerialization, Detail: detail}
}

// wrapError categorizes cause under kind, keeping it reachable via Unwrap.
func wrapError(kind, cause error) *ToolError {
	return &ToolError{Kind: kind, Detail: cause.Error(), Cause: cause}
}

// KindOf returns the sentinel kind carried by err, or nil when err is not a
// ToolError.
func KindOf(err error) error {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	return nil
}
