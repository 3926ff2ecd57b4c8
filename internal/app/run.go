package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/engine"
	"github.com/specialistvlad/formtree/internal/expr"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	state, err := a.engine.Snapshot(ctx, a.input)
	if err != nil {
		return fmt.Errorf("failed to generate snapshot: %w", err)
	}
	a.logger.Debug("Snapshot generated.", "nodes", state.Tree().Len())

	switch {
	case appConfig.Check:
		err = a.runCheck(appConfig.Output)
	case appConfig.REPL:
		err = a.runREPL(ctx, state)
	case appConfig.Expression != "":
		err = a.runExpression(state, appConfig.Expression, appConfig.NodeID, appConfig.Output)
	case appConfig.NodeID != "":
		err = a.runNode(state, appConfig.NodeID, appConfig.Output)
	default:
		err = a.runTree(state, appConfig.Output)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) runTree(state *engine.State, output string) error {
	if output == OutputJSON {
		return a.writeJSON(state.Tree())
	}
	writeTree(a.outW, state)
	return nil
}

func (a *App) runExpression(state *engine.State, raw, nodeID, output string) error {
	e, err := expr.ParseJSON([]byte(raw))
	if err != nil {
		return err
	}
	v, err := state.Evaluate(e, nodeID)
	if err != nil {
		return err
	}
	if output == OutputJSON {
		return a.writeJSON(map[string]any{"result": expr.ToGo(v)})
	}
	_, err = fmt.Fprintln(a.outW, expr.FormatValue(v))
	return err
}

func (a *App) runNode(state *engine.State, nodeID, output string) error {
	props, err := state.Properties(nodeID)
	if err != nil {
		return err
	}
	v, err := state.Value(nodeID)
	if err != nil {
		return err
	}
	n, _ := state.Tree().FindByID(nodeID)

	if output == OutputJSON {
		return a.writeJSON(map[string]any{
			"id":         nodeID,
			"type":       n.Type(),
			"properties": props,
			"value":      expr.ToGo(v),
		})
	}
	writeNode(a.outW, n, props, v)
	return nil
}

func (a *App) writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, string(b))
	return err
}
