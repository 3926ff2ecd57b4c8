package nodegen

import (
	"sync"

	"github.com/specialistvlad/formtree/internal/tree"
)

// Memo keeps the nodes of the previous generations so that a subtree whose
// shape did not change is reused by reference. The shape of a subtree is the
// row count of every repeating container in it; nodes depend on nothing else
// from the form data.
//
// A Memo must only be shared by generators of the same lookup table.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
}

type memoEntry struct {
	shape string
	node  *tree.Node
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

func (m *Memo) get(id, shape string) (*tree.Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok || e.shape != shape {
		return nil, false
	}
	return e.node, true
}

func (m *Memo) put(id, shape string, n *tree.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoEntry{shape: shape, node: n}
}

// retain drops every entry not in keep.
func (m *Memo) retain(keep map[string]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.entries {
		if !keep[id] {
			delete(m.entries, id)
		}
	}
}

// Len returns the number of remembered nodes.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
