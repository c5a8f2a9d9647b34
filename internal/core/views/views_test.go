package views

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/colonyops/bon/internal/core/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	openOutcome = map[string]any{
		"id": "test-abc", "type": "outcome", "title": "Test outcome", "status": "open", "order": 1,
	}
	doneOutcome = map[string]any{
		"id": "test-done", "type": "outcome", "title": "Done outcome", "status": "done", "order": 1,
	}
	openAction = map[string]any{
		"id": "test-act1", "type": "action", "title": "Open action", "status": "open", "parent": "test-abc", "order": 1,
	}
	doneAction = map[string]any{
		"id": "test-act2", "type": "action", "title": "Done action", "status": "done", "parent": "test-abc", "order": 2,
	}
	waitingAction = map[string]any{
		"id": "test-wait", "type": "action", "title": "Waiting action", "status": "open", "parent": "test-abc",
		"order": 3, "waiting_for": "something",
	}
	tacticalAction = map[string]any{
		"id": "test-tac", "type": "action", "title": "Tactical action", "status": "open", "parent": "test-abc",
		"order": 4, "tactical": map[string]any{"steps": []string{"First step", "Second step", "Third step"}, "current": 1},
	}
)

func with(base map[string]any, kv ...any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func jsonl(t *testing.T, records ...map[string]any) string {
	t.Helper()
	var b strings.Builder
	for _, r := range records {
		bits, err := json.Marshal(r)
		require.NoError(t, err)
		b.Write(bits)
		b.WriteByte('\n')
	}
	return b.String()
}

func render(t *testing.T, log string, v View) string {
	t.Helper()
	res, err := items.Decode(strings.NewReader(log), v.DefaultMode())
	if err != nil {
		return ""
	}
	return String(res.Set, v)
}

func lines(out string) []string {
	var ls []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if l != "" {
			ls = append(ls, l)
		}
	}
	return ls
}

func TestParse(t *testing.T) {
	for _, v := range All {
		got, ok := Parse(string(v))
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := Parse("bogus")
	assert.False(t, ok)
	_, ok = Parse("")
	assert.False(t, ok)
}

func TestDefaultMode(t *testing.T) {
	assert.Equal(t, items.ModeStrict, ViewList.DefaultMode())
	assert.Equal(t, items.ModeStrict, ViewReady.DefaultMode())
	assert.Equal(t, items.ModeLenient, ViewCurrent.DefaultMode())
}

func TestEmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{name: "empty log", log: ""},
		{name: "blank lines", log: "\n\n"},
		{name: "all done", log: jsonl(t, doneOutcome, with(doneAction, "parent", "test-done"))},
	}

	for _, tt := range tests {
		for _, v := range All {
			t.Run(tt.name+"/"+string(v), func(t *testing.T) {
				assert.Empty(t, render(t, tt.log, v))
			})
		}
	}
}

func TestList_ShipRelease(t *testing.T) {
	log := jsonl(t,
		map[string]any{"id": "o1", "type": "outcome", "title": "Ship release", "status": "open", "order": 1},
		map[string]any{"id": "a1", "type": "action", "title": "Write tests", "status": "open", "parent": "o1", "order": 1},
		map[string]any{"id": "a2", "type": "action", "title": "Deploy", "status": "done", "parent": "o1", "order": 2},
	)

	want := "○ 1. Ship release (o1)\n" +
		"  ○ 1. Write tests (a1)\n" +
		"  ✓ 2. Deploy (a2)\n"
	assert.Equal(t, want, render(t, log, ViewList))

	wantReady := "1. Ship release (o1)\n" +
		"  1. Write tests (a1)\n"
	assert.Equal(t, wantReady, render(t, log, ViewReady))
}

func TestList(t *testing.T) {
	t.Run("mixed actions", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, openAction, doneAction), ViewList)
		assert.Contains(t, out, "Test outcome")
		assert.Contains(t, out, "○ 1. Open action (test-act1)")
		assert.Contains(t, out, "✓ 2. Done action (test-act2)")
	})

	t.Run("standalone outcome", func(t *testing.T) {
		ls := lines(render(t, jsonl(t, openOutcome), ViewList))
		require.Len(t, ls, 1)
		assert.Equal(t, "○ 1. Test outcome (test-abc)", ls[0])
	})

	t.Run("sorted by order", func(t *testing.T) {
		out := render(t, jsonl(t,
			openOutcome,
			with(openAction, "order", 2, "title", "Second"),
			with(openAction, "id", "test-first", "order", 1, "title", "First"),
		), ViewList)
		assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"))
	})

	t.Run("numbered by order field", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, with(openAction, "order", 3, "title", "Third action")), ViewList)
		assert.Contains(t, out, "  ○ 3. Third action (test-act1)")
	})

	t.Run("multiple outcomes in order", func(t *testing.T) {
		second := map[string]any{"id": "test-xyz", "type": "outcome", "title": "Second outcome", "status": "open", "order": 2}
		ls := lines(render(t, jsonl(t, second, openOutcome), ViewList))
		require.Len(t, ls, 2)
		assert.Contains(t, ls[0], "Test outcome")
		assert.Contains(t, ls[1], "Second outcome")
	})

	t.Run("waiting shown with suffix", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, waitingAction), ViewList)
		assert.Contains(t, out, "○ 3. Waiting action [WAITING] (test-wait)")
	})

	t.Run("no trailing blank line", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, openAction), ViewList)
		require.NotEmpty(t, out)
		assert.False(t, strings.HasSuffix(out, "\n\n"))
	})

	t.Run("orphans after outcomes", func(t *testing.T) {
		out := render(t, jsonl(t,
			openOutcome,
			with(openAction, "id", "lost", "parent", "ghost", "title", "Lost action"),
			with(openAction, "id", "dropped", "parent", "ghost", "title", "Dropped", "status", "done"),
		), ViewList)
		want := "○ 1. Test outcome (test-abc)\n\n○ 1. Lost action (lost)\n"
		assert.Equal(t, want, out)
	})

	t.Run("open action under done outcome is orphaned", func(t *testing.T) {
		out := render(t, jsonl(t, doneOutcome, with(openAction, "parent", "test-done")), ViewList)
		assert.Equal(t, "○ 1. Open action (test-act1)\n", out)
	})

	t.Run("groups separated by one blank line", func(t *testing.T) {
		second := map[string]any{"id": "test-xyz", "type": "outcome", "title": "Second outcome", "order": 2}
		out := render(t, jsonl(t, openOutcome, openAction, second), ViewList)
		want := "○ 1. Test outcome (test-abc)\n" +
			"  ○ 1. Open action (test-act1)\n" +
			"\n" +
			"○ 2. Second outcome (test-xyz)\n"
		assert.Equal(t, want, out)
	})

	t.Run("malformed line empties output", func(t *testing.T) {
		log := jsonl(t, openOutcome) + "INVALID JSON\n" + jsonl(t, openAction)
		assert.Empty(t, render(t, log, ViewList))
	})
}

func TestReady(t *testing.T) {
	t.Run("excludes done", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, openAction, doneAction), ViewReady)
		assert.Contains(t, out, "Open action")
		assert.NotContains(t, out, "Done action")
	})

	t.Run("excludes waiting", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, openAction, waitingAction), ViewReady)
		assert.Contains(t, out, "Open action")
		assert.NotContains(t, out, "Waiting action")
	})

	t.Run("waiting outcome excluded", func(t *testing.T) {
		out := render(t, jsonl(t,
			with(openOutcome, "waiting_for", "legal", "title", "Blocked goal"),
			openAction,
		), ViewReady)
		assert.NotContains(t, out, "[WAITING]")
		assert.NotContains(t, out, "Blocked goal")
		assert.Equal(t, "1. Open action (test-act1)\n", out)
	})

	t.Run("renumbers sequentially", func(t *testing.T) {
		out := render(t, jsonl(t,
			openOutcome,
			with(openAction, "order", 3, "title", "Was third"),
			with(openAction, "id", "test-act5", "order", 5, "title", "Was fifth"),
		), ViewReady)
		var actions []string
		for _, l := range lines(out) {
			if strings.HasPrefix(l, "  ") {
				actions = append(actions, strings.TrimSpace(l))
			}
		}
		require.Len(t, actions, 2)
		assert.Equal(t, "1. Was third (test-act1)", actions[0])
		assert.Equal(t, "2. Was fifth (test-act5)", actions[1])
	})

	t.Run("outcome kept when all actions done", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, doneAction), ViewReady)
		assert.Equal(t, "1. Test outcome (test-abc)\n", out)
	})

	t.Run("orphans never include done or waiting", func(t *testing.T) {
		out := render(t, jsonl(t,
			with(openAction, "id", "o-ready", "parent", ""),
			with(waitingAction, "id", "o-wait", "parent", ""),
			with(doneAction, "id", "o-done", "parent", ""),
		), ViewReady)
		assert.Equal(t, "1. Open action (o-ready)\n", out)
	})

	t.Run("no trailing blank line", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, openAction), ViewReady)
		require.NotEmpty(t, out)
		assert.False(t, strings.HasSuffix(out, "\n\n"))
	})
}

func TestCurrent(t *testing.T) {
	t.Run("no tactical", func(t *testing.T) {
		assert.Empty(t, render(t, jsonl(t, openOutcome, openAction), ViewCurrent))
	})

	t.Run("step markers", func(t *testing.T) {
		out := render(t, jsonl(t, openOutcome, tacticalAction), ViewCurrent)
		want := "Working: Tactical action (test-tac)\n" +
			"  ✓ First step\n" +
			"  → Second step [current]\n" +
			"    Third step\n"
		assert.Equal(t, want, out)
	})

	t.Run("done item ignored", func(t *testing.T) {
		assert.Empty(t, render(t, jsonl(t, openOutcome, with(tacticalAction, "status", "done")), ViewCurrent))
	})

	t.Run("step zero", func(t *testing.T) {
		action := with(tacticalAction, "tactical", map[string]any{"steps": []string{"Only step"}, "current": 0})
		ls := lines(render(t, jsonl(t, openOutcome, action), ViewCurrent))
		require.Len(t, ls, 2)
		assert.Equal(t, "  → Only step [current]", ls[1])
	})

	t.Run("empty steps ignored", func(t *testing.T) {
		action := with(tacticalAction, "tactical", map[string]any{"steps": []string{}, "current": 0})
		assert.Empty(t, render(t, jsonl(t, action), ViewCurrent))
	})

	t.Run("malformed line skipped", func(t *testing.T) {
		log := jsonl(t, openOutcome) + "INVALID JSON\n" + jsonl(t, tacticalAction)
		out := render(t, log, ViewCurrent)
		assert.Contains(t, out, "Working: Tactical action (test-tac)")
	})

	t.Run("blocks separated", func(t *testing.T) {
		other := with(tacticalAction, "id", "test-tac2", "title", "Other",
			"tactical", map[string]any{"steps": []string{"x"}, "current": 0})
		out := render(t, jsonl(t, tacticalAction, other), ViewCurrent)
		assert.Contains(t, out, "    Third step\n\nWorking: Other (test-tac2)\n")
		assert.False(t, strings.HasSuffix(out, "\n\n"))
	})
}

func TestRender_Idempotent(t *testing.T) {
	log := jsonl(t, openOutcome, openAction, doneAction, waitingAction, tacticalAction)
	for _, v := range All {
		assert.Equal(t, render(t, log, v), render(t, log, v))
	}
}

type countingWriter struct {
	writes int
	buf    strings.Builder
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.buf.Write(p)
}

func TestRender_SingleWrite(t *testing.T) {
	res, err := items.Decode(strings.NewReader(jsonl(t, openOutcome, openAction, doneAction, tacticalAction)), items.ModeStrict)
	require.NoError(t, err)

	for _, v := range All {
		t.Run(string(v), func(t *testing.T) {
			var w countingWriter
			require.NoError(t, Render(&w, res.Set, v))
			assert.Equal(t, 1, w.writes)
			assert.NotEmpty(t, w.buf.String())
		})
	}

	var w countingWriter
	require.NoError(t, Render(&w, items.NewSet(), ViewList))
	assert.Zero(t, w.writes, "empty views write nothing")
}

func TestRender_UnknownView(t *testing.T) {
	var b strings.Builder
	err := Render(&b, items.NewSet(), View("bogus"))
	require.Error(t, err)
}
