package dag

import "sync"

// Graph is a collection of nodes and their dependencies.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node is a single vertex in the graph. It is un-exported so callers work
// with string IDs only.
type node struct {
	id string
	// dependents holds the nodes that depend on this node (successors).
	dependents map[string]*node
}
