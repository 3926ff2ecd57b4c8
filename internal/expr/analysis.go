package expr

import (
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// Container is a thread-safe helper that gathers expressions and reports the
// components they reference. Only references written as string constants
// are visible statically.
type Container struct {
	// analyzeOnce ensures the extraction logic runs once per set of
	// expressions.
	analyzeOnce sync.Once

	mu          sync.RWMutex
	expressions []Expr

	components []string
}

// NewContainer creates a new, empty expression container.
func NewContainer() *Container {
	return &Container{}
}

// Add adds expressions for analysis. Nil expressions are ignored.
func (c *Container) Add(exprs ...Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// NOTE: resetting the Once is only safe because Add is never called
	// concurrently with the getters.
	c.analyzeOnce = sync.Once{}

	for _, e := range exprs {
		if e != nil {
			c.expressions = append(c.expressions, e)
		}
	}
}

func (c *Container) analyze() {
	c.analyzeOnce.Do(func() {
		c.mu.RLock()
		found := make(map[string]struct{})
		for _, e := range c.expressions {
			collectComponents(e, found)
		}
		c.mu.RUnlock()

		c.mu.Lock()
		c.components = sortedKeys(found)
		c.mu.Unlock()
	})
}

// Components returns the unique, sorted component ids referenced through
// the component function.
func (c *Container) Components() []string {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.components
}

// ComponentRefs is a shortcut for analysing a single expression.
func ComponentRefs(e Expr) []string {
	c := NewContainer()
	c.Add(e)
	return c.Components()
}

func collectComponents(e Expr, found map[string]struct{}) {
	call, ok := e.(*Call)
	if !ok {
		return
	}
	if call.Func == "component" {
		if id, ok := constString(call.Args, 0); ok {
			found[id] = struct{}{}
		}
	}
	for _, arg := range call.Args {
		collectComponents(arg, found)
	}
}

func constString(args []Expr, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	lit, ok := args[i].(Literal)
	if !ok || lit.Value.IsNull() || lit.Value.Type() != cty.String {
		return "", false
	}
	return lit.Value.AsString(), true
}
