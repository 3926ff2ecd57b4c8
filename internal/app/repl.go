package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/engine"
	"github.com/specialistvlad/formtree/internal/expr"
)

const replHelp = `Enter an expression as JSON, e.g. ["component", "name"].
Commands:
  :node <id>  evaluate in the row context of a node
  :node       evaluate without row context
  :quit       leave`

// replSession holds the state of one interactive session.
type replSession struct {
	state  *engine.State
	nodeID string
}

func (s *replSession) prompt() string {
	if s.nodeID == "" {
		return "> "
	}
	return s.nodeID + "> "
}

// handle runs one input line. It returns the text to print and whether the
// session should end.
func (s *replSession) handle(line string) (string, bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", false
	case line == ":quit" || line == ":q":
		return "", true
	case line == ":help":
		return replHelp, false
	case line == ":node":
		s.nodeID = ""
		return "", false
	case strings.HasPrefix(line, ":node "):
		id := strings.TrimSpace(strings.TrimPrefix(line, ":node "))
		if _, ok := s.state.Tree().FindByID(id); !ok {
			return fmt.Sprintf("error: no node %q", id), false
		}
		s.nodeID = id
		return "", false
	case strings.HasPrefix(line, ":"):
		return fmt.Sprintf("error: unknown command %s", line), false
	}

	e, err := expr.ParseJSON([]byte(line))
	if err != nil {
		return "error: " + err.Error(), false
	}
	v, err := s.state.Evaluate(e, s.nodeID)
	if err != nil {
		return "error: " + err.Error(), false
	}
	return "= " + expr.FormatValue(v), false
}

func (a *App) runREPL(ctx context.Context, state *engine.State) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting REPL.")

	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetCtrlCAborts(true)

	s := &replSession{state: state}
	fmt.Fprintln(a.outW, replHelp)
	for {
		line, err := lin.Prompt(s.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.outW)
				return nil
			}
			return fmt.Errorf("unexpected error reading prompt: %w", err)
		}
		lin.AppendHistory(line)

		out, done := s.handle(line)
		if out != "" {
			fmt.Fprintln(a.outW, out)
		}
		if done {
			return nil
		}
	}
}
