package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/lookup"
)

// ErrCheckFailed is returned by a check run that found problems.
var ErrCheckFailed = errors.New("check found problems")

type checkReport struct {
	Problems           []string            `json:"problems"`
	InvalidExpressions []invalidExpression `json:"invalidExpressions"`
	UnknownReferences  []unknownReference  `json:"unknownReferences"`
	Cycle              string              `json:"cycle,omitempty"`
}

type invalidExpression struct {
	Component string `json:"component"`
	Property  string `json:"property"`
	Error     string `json:"error"`
}

type unknownReference struct {
	Component string `json:"component"`
	Target    string `json:"target"`
}

func (r *checkReport) empty() bool {
	return len(r.Problems) == 0 && len(r.InvalidExpressions) == 0 && len(r.UnknownReferences) == 0 && r.Cycle == ""
}

// buildCheckReport collects what is wrong with the layout set: children that
// could not be claimed, expressions that do not parse, references to
// components that do not exist and reference loops.
func (a *App) buildCheckReport() *checkReport {
	table := a.engine.Table()
	report := &checkReport{
		Problems:           []string{},
		InvalidExpressions: []invalidExpression{},
		UnknownReferences:  []unknownReference{},
	}

	for _, p := range table.Problems() {
		report.Problems = append(report.Problems, p.String())
	}

	for _, page := range table.Pages() {
		e := table.PageHidden(page)
		if e == nil {
			continue
		}
		if !e.Valid() {
			report.InvalidExpressions = append(report.InvalidExpressions, invalidExpression{
				Component: page, Property: "page.hidden", Error: e.Err.Error(),
			})
			continue
		}
		refs := expr.NewContainer()
		refs.Add(e.Expr)
		report.addUnknownReferences(table, page, refs)
	}
	for _, id := range table.IDs() {
		c, _ := table.Component(id)
		exprs := c.Expressions()
		names := make([]string, 0, len(exprs))
		for name := range exprs {
			names = append(names, name)
		}
		sort.Strings(names)
		refs := expr.NewContainer()
		for _, name := range names {
			e := exprs[name]
			if !e.Valid() {
				report.InvalidExpressions = append(report.InvalidExpressions, invalidExpression{
					Component: id, Property: name, Error: e.Err.Error(),
				})
				continue
			}
			refs.Add(e.Expr)
		}
		report.addUnknownReferences(table, id, refs)
	}

	if err := a.engine.Cycles(); err != nil {
		report.Cycle = err.Error()
	}
	return report
}

func (r *checkReport) addUnknownReferences(table *lookup.Table, from string, refs *expr.Container) {
	for _, target := range refs.Components() {
		if _, ok := table.Component(target); !ok {
			r.UnknownReferences = append(r.UnknownReferences, unknownReference{Component: from, Target: target})
		}
	}
}

func (a *App) runCheck(output string) error {
	report := a.buildCheckReport()
	a.logger.Debug("Check finished.",
		"problems", len(report.Problems),
		"invalid_expressions", len(report.InvalidExpressions),
		"unknown_references", len(report.UnknownReferences),
		"cycle", report.Cycle != "")

	if output == OutputJSON {
		if err := a.writeJSON(report); err != nil {
			return err
		}
	} else {
		a.writeCheckReport(report)
	}

	if !report.empty() {
		return ErrCheckFailed
	}
	return nil
}

func (a *App) writeCheckReport(r *checkReport) {
	if r.empty() {
		fmt.Fprintln(a.outW, "No problems found.")
		return
	}
	for _, p := range r.Problems {
		fmt.Fprintf(a.outW, "layout: %s\n", p)
	}
	for _, e := range r.InvalidExpressions {
		fmt.Fprintf(a.outW, "expression: %s %s: %s\n", e.Component, e.Property, e.Error)
	}
	for _, u := range r.UnknownReferences {
		fmt.Fprintf(a.outW, "reference: %s refers to unknown component %q\n", u.Component, u.Target)
	}
	if r.Cycle != "" {
		fmt.Fprintf(a.outW, "cycle: %s\n", r.Cycle)
	}
}
