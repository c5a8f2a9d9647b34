package logging

import "context"

type contextKey string

const (
	repoKey    contextKey = "repo"
	commandKey contextKey = "command"
)

// WithRepo adds a repository name to the context.
func WithRepo(ctx context.Context, repo string) context.Context {
	return context.WithValue(ctx, repoKey, repo)
}

// WithCommand adds the running command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetRepo retrieves the repository name from the context.
// Returns empty string if not present.
func GetRepo(ctx context.Context) string {
	if v, ok := ctx.Value(repoKey).(string); ok {
		return v
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}
