package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger tagged with "cmp".
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Command tags ctx with the running command and returns a component logger
// of the same name. Events logged with .Ctx(ctx) also carry the command.
func Command(ctx context.Context, name string) (context.Context, zerolog.Logger) {
	return WithCommand(ctx, name), Component(name)
}
