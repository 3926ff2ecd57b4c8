package datamodel

import (
	"strconv"
	"strings"
)

// Segment is a single component of a field path, e.g. `name` or `name[index]`.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewSegment creates a path segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewIndexedSegment creates a path segment that carries a row index.
func NewIndexedSegment(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the segment has an explicit row index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Path is the parsed form of a dotted field path.
type Path []Segment

// String serializes the path into its canonical dotted representation.
func (p Path) String() string {
	var sb strings.Builder
	for i, segment := range p {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteRune('[')
			sb.WriteString(strconv.Itoa(segment.Index))
			sb.WriteRune(']')
		}
	}
	return sb.String()
}

// Equal reports whether both paths have the same segments and indices.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that can be modified without touching p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// HasIndices reports whether any segment carries a row index.
func (p Path) HasIndices() bool {
	for _, s := range p {
		if s.HasIndex() {
			return true
		}
	}
	return false
}

// Indices returns the row indices in outer-to-inner order.
func (p Path) Indices() []int {
	var out []int
	for _, s := range p {
		if s.HasIndex() {
			out = append(out, s.Index)
		}
	}
	return out
}

// Unindexed returns a copy of p with all row indices removed.
func (p Path) Unindexed() Path {
	out := p.Clone()
	for i := range out {
		out[i].Index = -1
	}
	return out
}

// HasNamePrefix reports whether the segment names of prefix are a strict
// prefix of the segment names of p. Row indices are ignored.
func (p Path) HasNamePrefix(prefix Path) bool {
	if len(prefix) == 0 || len(prefix) >= len(p) {
		return false
	}
	for i := range prefix {
		if p[i].Name != prefix[i].Name {
			return false
		}
	}
	return true
}

// WithRow returns a copy of p whose last segment carries the given index.
func (p Path) WithRow(row int) Path {
	out := p.Clone()
	if len(out) > 0 {
		out[len(out)-1].Index = row
	}
	return out
}
