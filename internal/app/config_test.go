package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"tree", Config{ProjectPath: "p"}, ""},
		{"expression in a row", Config{ProjectPath: "p", Expression: "true", NodeID: "n-0"}, ""},
		{"node only", Config{ProjectPath: "p", NodeID: "n-0", Output: OutputJSON}, ""},
		{"no project", Config{}, "ProjectPath is a required configuration field"},
		{"bad output", Config{ProjectPath: "p", Output: "yaml"}, `invalid output "yaml"`},
		{"check and repl", Config{ProjectPath: "p", Check: true, REPL: true}, "cannot be combined"},
		{"check and expression", Config{ProjectPath: "p", Check: true, Expression: "true"}, "cannot be combined"},
		{"node with check", Config{ProjectPath: "p", Check: true, NodeID: "n"}, "node can only be used"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Output)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("WARN", "json", &buf)
	logger.Info("dropped")
	logger.Warn("Kept.", "key", "value")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"Kept."`)

	buf.Reset()
	logger = newLogger("nonsense", "text", &buf)
	logger.Debug("dropped")
	logger.Info("Kept.")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=Kept.")
}
