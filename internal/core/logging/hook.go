package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies repo and command from the event context into log fields.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}

	if repo := GetRepo(ctx); repo != "" {
		e.Str("repo", repo)
	}
}
