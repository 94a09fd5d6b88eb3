// Package config holds the runtime configuration of govault: global flags,
// command-specific options and the list of configured vaults.
package config

import (
	"errors"
	"fmt"

	"github.com/idelchi/gogen/pkg/validator"
)

// ErrUsage indicates an error in command-line usage or configuration.
var ErrUsage = errors.New("usage error")

// Config is populated by viper from flags, GOVAULT_* environment variables and the config file.
type Config struct {
	// Show prints the configuration and exits
	Show bool `mapstructure:"show"`

	// Vault selection
	Vault  string `mapstructure:"vault"`
	Vaults Vaults `mapstructure:"vaults" validate:"dive"`

	// Key sources, at most one of the first three
	Key      string `label:"--key"       mapstructure:"key"       mask:"filled" validate:"exclusive=--key-input"`
	KeyFile  string `label:"--key-file"  mapstructure:"key-file"  validate:"exclusive=--key"`
	KeyInput string `label:"--key-input" mapstructure:"key-input" mask:"filled" validate:"exclusive=--key-file"`
	Machine  bool   `mapstructure:"machine"`

	Algorithm string `label:"--algorithm" mapstructure:"algorithm" validate:"omitempty,oneof=aes des 3des blowfish"`
	Parallel  int    `label:"--parallel"  mapstructure:"parallel"  validate:"min=0"`

	// Output
	Quiet    bool   `mapstructure:"quiet"`
	Progress bool   `mapstructure:"progress"`
	Stats    bool   `mapstructure:"stats"`
	LogLevel string `label:"--log-level" mapstructure:"log-level" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFile  string `mapstructure:"log-file"`

	// Command-specific flags
	Delete  bool     `mapstructure:"delete"`
	From    string   `mapstructure:"from"`
	Exclude []string `mapstructure:"exclude"`
	Out     string   `mapstructure:"out"`
	Size    int      `label:"--size" mapstructure:"size" validate:"omitempty,min=1,max=64"`

	// Positional arguments
	Patterns []string `mapstructure:"-"`

	// Dir is the directory of the config file in use, or the working directory.
	Dir string `mapstructure:"-"`
}

// Display reports whether the configuration should be shown instead of running the command.
func (c Config) Display() bool {
	return c.Show
}

// Validate validates config against its struct tags.
// It returns a wrapped ErrUsage if any validation rules are violated.
func (c Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return fmt.Errorf("registering exclusive: %w", err)
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	default:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}
}
