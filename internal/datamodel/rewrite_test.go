package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteFieldForRow(t *testing.T) {
	group := NewReference("model", "RepGroup")

	testCases := []struct {
		name     string
		ref      Reference
		group    Reference
		row      int
		expected string
	}{
		{
			name:     "child of group",
			ref:      NewReference("model", "RepGroup.Input"),
			group:    group,
			row:      1,
			expected: "RepGroup[1].Input",
		},
		{
			name:     "group binding itself is left alone",
			ref:      NewReference("model", "RepGroup"),
			group:    group,
			row:      1,
			expected: "RepGroup",
		},
		{
			name:     "other data type is left alone",
			ref:      NewReference("other", "RepGroup.Input"),
			group:    group,
			row:      1,
			expected: "RepGroup.Input",
		},
		{
			name:     "sibling with shared name prefix is left alone",
			ref:      NewReference("model", "RepGroupOther.Input"),
			group:    group,
			row:      1,
			expected: "RepGroupOther.Input",
		},
		{
			name:     "explicit index is kept",
			ref:      NewReference("model", "RepGroup[4].Input"),
			group:    group,
			row:      1,
			expected: "RepGroup[4].Input",
		},
		{
			name:     "nested group after outer rewrite",
			ref:      NewReference("model", "RepGroup[1].NestedRepGroup.Input"),
			group:    NewReference("model", "RepGroup[1].NestedRepGroup"),
			row:      3,
			expected: "RepGroup[1].NestedRepGroup[3].Input",
		},
		{
			name:     "nested group under a different outer row",
			ref:      NewReference("model", "RepGroup[0].NestedRepGroup.Input"),
			group:    NewReference("model", "RepGroup[1].NestedRepGroup"),
			row:      3,
			expected: "RepGroup[0].NestedRepGroup.Input",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RewriteFieldForRow(tc.ref, tc.group, tc.row)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.Field)
			assert.Equal(t, tc.ref.DataType, out.DataType)
		})
	}
}

func TestRewriteFieldForRow_NestingOffsetLaw(t *testing.T) {
	ref := NewReference("model", "Outer.Inner.Value")
	outer := NewReference("model", "Outer")

	ref, err := RewriteFieldForRow(ref, outer, 2)
	require.NoError(t, err)
	inner, err := RewriteFieldForRow(NewReference("model", "Outer.Inner"), outer, 2)
	require.NoError(t, err)
	ref, err = RewriteFieldForRow(ref, inner, 5)
	require.NoError(t, err)

	assert.Equal(t, "Outer[2].Inner[5].Value", ref.Field)
}

func TestRewriteFieldForRow_InvalidPath(t *testing.T) {
	_, err := RewriteFieldForRow(NewReference("model", "a[b].c"), NewReference("model", "a"), 0)
	var pathErr *InvalidPathError
	require.ErrorAs(t, err, &pathErr)
}

func TestTranspose(t *testing.T) {
	testCases := []struct {
		target, context, expected string
	}{
		{"Group.Other", "Group[2].Field", "Group[2].Other"},
		{"Group.Nested.Value", "Group[1].Nested[3].Field", "Group[1].Nested[3].Value"},
		{"Other.Value", "Group[1].Field", "Other.Value"},
		{"Group[0].Value", "Group[1].Field", "Group[0].Value"},
		{"Group[1].Nested.Value", "Group[1].Nested[4]", "Group[1].Nested[4].Value"},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			out := Transpose(MustParsePath(tc.target), MustParsePath(tc.context))
			assert.Equal(t, tc.expected, out.String())
		})
	}
}
