package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "repo and command",
			setupCtx: func() context.Context {
				return WithRepo(WithCommand(context.Background(), "audit"), "passe")
			},
			wantKeys: []string{"repo", "command"},
		},
		{
			name: "only repo",
			setupCtx: func() context.Context {
				return WithRepo(context.Background(), "passe")
			},
			wantKeys:  []string{"repo"},
			wantEmpty: []string{"command"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"repo", "command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, entry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, entry, key)
			}
		})
	}
}
