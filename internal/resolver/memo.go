package resolver

import (
	"strings"
	"sync"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/tree"
	"github.com/zclconf/go-cty/cty"
)

// dependency is one input a cached result was computed from: either the value
// of a data field, or whether a node exists.
type dependency struct {
	ref   datamodel.Reference
	value cty.Value

	nodeID string
	exists bool
}

type result struct {
	value any
	deps  []dependency
}

// Memo carries results from one snapshot to the next. Entries are tagged with
// a scope describing everything that is not form data (instance, settings,
// texts, language); an entry is only reused within the same scope.
//
// A Memo must only be shared by resolvers of the same lookup table.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
}

type memoEntry struct {
	scope string
	result
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

// Len returns the number of remembered results.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memo) get(scope, key string) (result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || e.scope != scope {
		return result{}, false
	}
	return e.result, true
}

func (m *Memo) put(scope, key string, r result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoEntry{scope: scope, result: r}
}

// retain drops the entries of other scopes and those of nodes that t does
// not contain.
func (m *Memo) retain(scope string, t *tree.Tree) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if e.scope != scope {
			delete(m.entries, key)
			continue
		}
		if id, ok := nodeOf(key); ok {
			if _, exists := t.FindByID(id); !exists {
				delete(m.entries, key)
			}
		}
	}
}

// nodeOf returns the indexed id a result key belongs to. Page results belong
// to no node.
func nodeOf(key string) (string, bool) {
	for _, prefix := range []string{hiddenKey, propsKey} {
		if id, ok := strings.CutPrefix(key, prefix); ok {
			return id, true
		}
	}
	return "", false
}

// valid reports whether every dependency still holds in data and t.
func valid(deps []dependency, data dataSource, t *tree.Tree) bool {
	for _, d := range deps {
		if d.nodeID != "" {
			if _, exists := t.FindByID(d.nodeID); exists != d.exists {
				return false
			}
			continue
		}
		v, err := null, error(nil)
		if data != nil {
			v, err = data.Lookup(d.ref)
		}
		if err != nil || !v.RawEquals(d.value) {
			return false
		}
	}
	return true
}
