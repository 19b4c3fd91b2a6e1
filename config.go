package minil

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kolkov/minil/internal/interp"
)

// Config holds configuration options for compiling and running programs.
// Functions taking a *Config never modify it.
type Config struct {
	// Output is the writer for print statements.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// Separator is written between the arguments of one print.
	// When nil (default), a single space is used; point it at "" to
	// concatenate arguments. Each print ends its line with "\n".
	Separator *string

	// Trace receives parse and execution trace entries at Debug level.
	// If nil, tracing is off. Tracing never affects program output.
	Trace logrus.FieldLogger
}

// withDefaults returns a copy of config with unset fields filled in.
// A nil config yields the defaults.
func withDefaults(config *Config) Config {
	var c Config
	if config != nil {
		c = *config
	}
	if c.Separator == nil {
		sep := interp.DefaultSeparator
		c.Separator = &sep
	}
	return c
}
