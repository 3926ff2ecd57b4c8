package app

import (
	"context"
	"testing"

	"github.com/specialistvlad/formtree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplSession(t *testing.T) {
	cfg := Config{}
	a, _, _ := SetupAppTest(t, testutil.Project(), &cfg)
	state, err := a.Engine().Snapshot(context.Background(), a.input)
	require.NoError(t, err)

	s := &replSession{state: state}
	steps := []struct {
		line       string
		want       string
		wantPrompt string
		wantDone   bool
	}{
		{"", "", "> ", false},
		{`["component", "name"]`, `= "Ada"`, "> ", false},
		{`["component", "rep1b"]`, "error: ", "> ", false},
		{":node rep1c-input-1-1", "", "rep1c-input-1-1> ", false},
		{`["component", "rep1b"]`, `= "locked"`, "rep1c-input-1-1> ", false},
		{`["dataModel", "RepGroup.NestedRepGroup.Input"]`, `= "b"`, "rep1c-input-1-1> ", false},
		{":node nope", `error: no node "nope"`, "rep1c-input-1-1> ", false},
		{":node", "", "> ", false},
		{`["equals"`, "error: invalid expression", "> ", false},
		{":bogus", "error: unknown command :bogus", "> ", false},
		{":help", "Enter an expression", "> ", false},
		{":quit", "", "> ", true},
	}

	for _, step := range steps {
		out, done := s.handle(step.line)
		if step.want == "" {
			assert.Empty(t, out, step.line)
		} else {
			assert.Contains(t, out, step.want, step.line)
		}
		assert.Equal(t, step.wantPrompt, s.prompt(), step.line)
		assert.Equal(t, step.wantDone, done, step.line)
	}
}
