package builtin

import (
	"time"

	"toolbridge/internal/tools"
)

// Options control which builtin tools are registered and how they behave.
type Options struct {
	// WeatherLatency is the simulated upstream delay of the weather tool.
	WeatherLatency time.Duration

	// Enabled filters tools by name. Nil enables every tool.
	Enabled func(name string) bool
}

// Handlers returns every builtin tool wrapped as a handler, in name order.
func Handlers(opts Options) []tools.Handler {
	return []tools.Handler{
		tools.Adapt[CalculatorParams, CalculatorResult](NewCalculator()),
		tools.Adapt[TextParams, TextResult](NewText()),
		tools.Adapt[WeatherParams, WeatherResult](NewWeather(opts.WeatherLatency)),
	}
}

// RegisterAll registers the enabled builtin tools with the given registry and
// returns their names.
func RegisterAll(registry *tools.Registry, opts Options) []string {
	var names []string
	for _, h := range Handlers(opts) {
		name := h.Descriptor().Name
		if opts.Enabled != nil && !opts.Enabled(name) {
			continue
		}
		registry.Register(h)
		names = append(names, name)
	}
	return names
}
