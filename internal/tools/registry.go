package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"toolbridge/internal/logging"
	"toolbridge/internal/value"
)

// Registry maps tool names to handlers and dispatches calls to them.
// It is safe for concurrent use: mutations take the write lock, dispatch
// holds the read lock only for the lookup and runs the handler outside it.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler

	logger *zap.Logger

	// limit caps concurrent executions in ExecuteAll; 0 means unlimited.
	limit int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and dispatch events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrencyLimit caps how many calls of one ExecuteAll batch run at
// once. The default, 0, launches every call immediately.
func WithConcurrencyLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewRegistry creates a new empty tool registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		logger:   logging.Get(logging.CategoryRegistry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a handler under its descriptor name. A handler already
// registered under that name is replaced.
func (r *Registry) Register(h Handler) {
	name := h.Descriptor().Name

	r.mu.Lock()
	_, replaced := r.handlers[name]
	r.handlers[name] = h
	r.mu.Unlock()

	r.logger.Debug("registered tool", zap.String("tool", name), zap.Bool("replaced", replaced))
}

// RegisterAll registers each handler in order.
func (r *Registry) RegisterAll(handlers ...Handler) {
	for _, h := range handlers {
		r.Register(h)
	}
}

// RegisterTool adapts tool and registers it with r.
func RegisterTool[P, R any](r *Registry, tool Tool[P, R]) {
	r.Register(Adapt(tool))
}

// Unregister removes the named tool and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	_, ok := r.handlers[name]
	delete(r.handlers, name)
	r.mu.Unlock()

	if ok {
		r.logger.Debug("unregistered tool", zap.String("tool", name))
	}
	return ok
}

// Clear removes every tool.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := len(r.handlers)
	r.handlers = make(map[string]Handler)
	r.mu.Unlock()

	r.logger.Debug("cleared registry", zap.Int("removed", n))
}

// Has returns true if a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Names returns all registered tool names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// List returns the descriptors of all registered tools ordered by name.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	descs := make([]Descriptor, 0, len(r.handlers))
	for _, h := range r.handlers {
		descs = append(descs, h.Descriptor())
	}
	r.mu.RUnlock()

	sort.Slice(descs, func(i, j int) bool {
		return descs[i].Name < descs[j].Name
	})
	return descs
}

// Describe returns the descriptor of the named tool.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	h, ok := r.lookup(name)
	if !ok {
		return Descriptor{}, false
	}
	return h.Descriptor(), true
}

func (r *Registry) lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Execute runs one call. It never fails: every failure, including an
// unknown tool name, is reported through ToolResult.Error.
func (r *Registry) Execute(ctx context.Context, call ToolCall) ToolResult {
	start := time.Now()

	h, ok := r.lookup(call.Name)
	if !ok {
		r.logger.Debug("tool not found", zap.String("tool", call.Name), zap.String("call_id", call.ID))
		return failedResult(call, NotFound(call.Name), time.Since(start).Milliseconds())
	}

	out, err := r.dispatch(ctx, h, call)
	elapsed := time.Since(start)
	if err != nil {
		r.logger.Debug("tool call failed",
			zap.String("tool", call.Name),
			zap.String("call_id", call.ID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return failedResult(call, err, elapsed.Milliseconds())
	}

	if out.IsNull() {
		out = value.EmptyObject()
	}
	r.logger.Debug("tool call succeeded",
		zap.String("tool", call.Name),
		zap.String("call_id", call.ID),
		zap.Duration("elapsed", elapsed))
	return ToolResult{Call: call, Result: out, DurationMs: elapsed.Milliseconds()}
}

// dispatch shields the registry from handlers that panic or return errors
// without a kind. Uncategorized errors are reported as ErrExecutionFailed.
func (r *Registry) dispatch(ctx context.Context, h Handler, call ToolCall) (out value.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("handler panicked", zap.String("tool", call.Name), zap.Any("panic", p))
			out, err = value.Null(), ExecutionFailed(fmt.Sprintf("panic: %v", p))
		}
	}()
	out, err = h.Execute(ctx, call.Parameters)
	if err != nil {
		var te *ToolError
		if !errors.As(err, &te) {
			err = wrapError(ErrExecutionFailed, err)
		}
	}
	return out, err
}

// ExecuteAll runs every call concurrently and returns the results in input
// order: results[i] belongs to calls[i] whatever the completion order. A
// failing call only affects its own slot.
func (r *Registry) ExecuteAll(ctx context.Context, calls []ToolCall) []ToolResult {
	timer := logging.StartTimer(logging.CategoryRegistry, "batch completed")
	defer timer.Stop()

	results := make([]ToolResult, len(calls))

	// A plain Group, not WithContext: a failed call must not cancel its siblings.
	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			results[i] = r.Execute(ctx, call)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
