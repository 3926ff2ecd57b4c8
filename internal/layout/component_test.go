// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"encoding/json"
	"testing"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_UnmarshalJSON(t *testing.T) {
	input := `{
		"id": "rep1",
		"type": "RepeatingGroup",
		"dataModelBindings": {"group": "RepGroup", "other": {"dataType": "second", "field": "Other.Field"}},
		"children": ["0:a", "1:b"],
		"edit": {"multiPage": true, "mode": "showAll"},
		"maxCount": 5,
		"mapping": {"RepGroup[{0}].Id": "id"},
		"hidden": ["equals", ["dataModel", "Hide"], true],
		"required": true,
		"textResourceBindings": {"title": "group.title", "description": ["concat", "a", "b"]},
		"pageBreak": {"breakBefore": "auto"}
	}`

	var c Component
	require.NoError(t, json.Unmarshal([]byte(input), &c))

	assert.Equal(t, "rep1", c.ID)
	assert.Equal(t, TypeRepeatingGroup, c.Type)
	assert.Equal(t, map[string]datamodel.Reference{
		"group": datamodel.NewReference("", "RepGroup"),
		"other": datamodel.NewReference("second", "Other.Field"),
	}, c.DataModelBindings)
	assert.Equal(t, []string{"0:a", "1:b"}, c.Children)
	assert.Equal(t, &EditOptions{MultiPage: true, Mode: "showAll"}, c.Edit)
	assert.Equal(t, 5, c.MaxCount)
	assert.Equal(t, map[string]string{"RepGroup[{0}].Id": "id"}, c.Mapping)

	require.True(t, c.Hidden.Valid())
	assert.Equal(t, `["equals",["dataModel","Hide"],true]`, c.Hidden.Expr.String())
	require.True(t, c.Required.Valid())
	assert.Nil(t, c.ReadOnly)

	require.Len(t, c.TextResourceBindings, 2)
	assert.Equal(t, `"group.title"`, c.TextResourceBindings["title"].Expr.String())
	assert.JSONEq(t, `{"breakBefore": "auto"}`, string(c.Extra["pageBreak"]))
	assert.Equal(t, []string{"group", "other"}, c.BindingKeys())
}

func TestComponent_UnmarshalJSON_KeepsInvalidExpressions(t *testing.T) {
	var c Component
	require.NoError(t, json.Unmarshal([]byte(`{"id": "a", "type": "Input", "hidden": ["nope"]}`), &c))

	require.NotNil(t, c.Hidden)
	assert.False(t, c.Hidden.Valid())
	assert.ErrorContains(t, c.Hidden.Err, `unknown function "nope"`)
	assert.JSONEq(t, `["nope"]`, string(c.Hidden.Raw))
}

func TestComponent_UnmarshalJSON_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"binding of wrong type", `{"id": "a", "dataModelBindings": {"simpleBinding": 5}}`, `binding "simpleBinding" must be a string`},
		{"children not a list", `{"id": "a", "children": "b"}`, `invalid property "children"`},
		{"maxCount not a number", `{"id": "a", "maxCount": "many"}`, `invalid property "maxCount"`},
		{"not an object", `[1, 2]`, "cannot unmarshal"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var c Component
			err := json.Unmarshal([]byte(tc.input), &c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestComponent_MarshalJSON(t *testing.T) {
	var c Component
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "a", "type": "Input",
		"dataModelBindings": {"simpleBinding": "Name"},
		"hidden": ["not", true],
		"custom": 1
	}`), &c))

	b, err := json.Marshal(&c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "a", "type": "Input",
		"dataModelBindings": {"simpleBinding": {"dataType": "", "field": "Name"}},
		"hidden": ["not", true],
		"custom": 1
	}`, string(b))
}

func TestComponent_Binding(t *testing.T) {
	c := &Component{DataModelBindings: map[string]datamodel.Reference{
		"simpleBinding": datamodel.NewReference("model", "Name"),
		"empty":         {},
	}}

	ref, ok := c.Binding(BindingSimple)
	require.True(t, ok)
	assert.Equal(t, "model/Name", ref.String())

	_, ok = c.Binding("empty")
	assert.False(t, ok)
	_, ok = c.Binding("missing")
	assert.False(t, ok)
}

func TestComponent_Clone(t *testing.T) {
	orig := &Component{
		ID:                "a",
		Type:              TypeGroup,
		DataModelBindings: map[string]datamodel.Reference{"group": datamodel.NewReference("model", "G")},
		Children:          []string{"b"},
		Tabs:              []Tab{{ID: "t", Children: []string{"c"}}},
		Edit:              &EditOptions{MultiPage: true},
		Mapping:           map[string]string{"k": "v"},
		Hidden:            ConstExpression("x"),
		Extra:             map[string]json.RawMessage{"x": json.RawMessage(`1`)},
	}

	c := orig.Clone()
	c.DataModelBindings["group"] = datamodel.NewReference("model", "G[1]")
	c.Children[0] = "changed"
	c.Tabs[0].Children[0] = "changed"
	c.Edit.MultiPage = false
	c.Mapping["k"] = "changed"
	c.Extra["x"] = json.RawMessage(`2`)

	assert.Equal(t, "G", orig.DataModelBindings["group"].Field)
	assert.Equal(t, "b", orig.Children[0])
	assert.Equal(t, "c", orig.Tabs[0].Children[0])
	assert.True(t, orig.Edit.MultiPage)
	assert.Equal(t, "v", orig.Mapping["k"])
	assert.Equal(t, "1", string(orig.Extra["x"]))
	assert.Same(t, orig.Hidden, c.Hidden)

	var nilComponent *Component
	assert.Nil(t, nilComponent.Clone())
}

func TestComponent_Expressions(t *testing.T) {
	c := &Component{
		Hidden:               ConstExpression("x"),
		TextResourceBindings: map[string]*Expression{"title": ConstExpression("t"), "none": nil},
	}

	got := c.Expressions()
	require.Len(t, got, 2)
	assert.Same(t, c.Hidden, got["hidden"])
	assert.Same(t, c.TextResourceBindings["title"], got["textResourceBindings.title"])
}
