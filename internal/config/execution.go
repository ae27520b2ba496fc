package config

// ExecutionConfig configures how the CLI runs calls.
type ExecutionConfig struct {
	// Timeout applied to each command invocation
	DefaultTimeout string `yaml:"default_timeout"`

	// Maximum concurrent calls per batch; 0 = unlimited
	BatchConcurrency int `yaml:"batch_concurrency"`
}
