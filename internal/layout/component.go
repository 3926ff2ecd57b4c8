// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/specialistvlad/formtree/internal/datamodel"
)

// Component types with container behavior.
const (
	TypeGroup          = "Group"
	TypeRepeatingGroup = "RepeatingGroup"
	TypeLikert         = "Likert"
	TypeLikertItem     = "LikertItem"
	TypeTabs           = "Tabs"
)

// Well-known binding keys.
const (
	BindingSimple    = "simpleBinding"
	BindingGroup     = "group"
	BindingQuestions = "questions"
)

// Component is one authored component.
type Component struct {
	ID   string
	Type string
	// DataModelBindings maps a binding key (simpleBinding, group, ...) to a
	// data model reference. In JSON a binding is either a bare field string
	// or a {"dataType", "field"} object.
	DataModelBindings map[string]datamodel.Reference
	// Children holds child ids. In multi-page groups an entry may be
	// written as "pageIndex:childId".
	Children []string
	Tabs     []Tab
	Edit     *EditOptions
	// MaxCount > 1 turns a Group into a repeating group.
	MaxCount int
	// Mapping maps data model fields to query parameter names. Keys may
	// contain row placeholders like `[{0}]`.
	Mapping              map[string]string
	Hidden               *Expression
	Required             *Expression
	ReadOnly             *Expression
	TextResourceBindings map[string]*Expression
	// Extra keeps every other property verbatim.
	Extra map[string]json.RawMessage
}

// Tab is one tab of a Tabs container.
type Tab struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Children []string `json:"children"`
}

// EditOptions are the edit settings of a repeating group.
type EditOptions struct {
	MultiPage bool   `json:"multiPage,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// Binding returns the binding under key.
func (c *Component) Binding(key string) (datamodel.Reference, bool) {
	ref, ok := c.DataModelBindings[key]
	return ref, ok && !ref.IsZero()
}

// BindingKeys returns the binding keys in sorted order.
func (c *Component) BindingKeys() []string {
	keys := make([]string, 0, len(c.DataModelBindings))
	for k := range c.DataModelBindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Expressions returns the expression-valued properties that are set, keyed by
// property name. Text bindings are keyed as `textResourceBindings.<key>`.
func (c *Component) Expressions() map[string]*Expression {
	out := make(map[string]*Expression)
	for name, e := range map[string]*Expression{"hidden": c.Hidden, "required": c.Required, "readOnly": c.ReadOnly} {
		if e != nil {
			out[name] = e
		}
	}
	for key, e := range c.TextResourceBindings {
		if e != nil {
			out["textResourceBindings."+key] = e
		}
	}
	return out
}

// Clone returns a deep copy. Expressions are immutable and shared.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	if c.DataModelBindings != nil {
		out.DataModelBindings = make(map[string]datamodel.Reference, len(c.DataModelBindings))
		for k, v := range c.DataModelBindings {
			out.DataModelBindings[k] = v
		}
	}
	out.Children = append([]string(nil), c.Children...)
	if c.Tabs != nil {
		out.Tabs = make([]Tab, len(c.Tabs))
		for i, tab := range c.Tabs {
			tab.Children = append([]string(nil), tab.Children...)
			out.Tabs[i] = tab
		}
	}
	if c.Edit != nil {
		edit := *c.Edit
		out.Edit = &edit
	}
	if c.Mapping != nil {
		out.Mapping = make(map[string]string, len(c.Mapping))
		for k, v := range c.Mapping {
			out.Mapping[k] = v
		}
	}
	if c.TextResourceBindings != nil {
		out.TextResourceBindings = make(map[string]*Expression, len(c.TextResourceBindings))
		for k, v := range c.TextResourceBindings {
			out.TextResourceBindings[k] = v
		}
	}
	if c.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// UnmarshalJSON decodes the authored form.
func (c *Component) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*c = Component{}
	for key, value := range raw {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(value, &c.ID)
		case "type":
			err = json.Unmarshal(value, &c.Type)
		case "dataModelBindings":
			c.DataModelBindings, err = decodeBindings(value)
		case "children":
			err = json.Unmarshal(value, &c.Children)
		case "tabs":
			err = json.Unmarshal(value, &c.Tabs)
		case "edit":
			err = json.Unmarshal(value, &c.Edit)
		case "maxCount":
			err = json.Unmarshal(value, &c.MaxCount)
		case "mapping":
			err = json.Unmarshal(value, &c.Mapping)
		case "hidden":
			c.Hidden = NewExpression(value)
		case "required":
			c.Required = NewExpression(value)
		case "readOnly":
			c.ReadOnly = NewExpression(value)
		case "textResourceBindings":
			c.TextResourceBindings, err = decodeTexts(value)
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]json.RawMessage)
			}
			c.Extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("invalid property %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes the component back in the authored shape, with
// bindings always in object form.
func (c *Component) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+12)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["id"] = c.ID
	out["type"] = c.Type
	if len(c.DataModelBindings) > 0 {
		out["dataModelBindings"] = c.DataModelBindings
	}
	if len(c.Children) > 0 {
		out["children"] = c.Children
	}
	if len(c.Tabs) > 0 {
		out["tabs"] = c.Tabs
	}
	if c.Edit != nil {
		out["edit"] = c.Edit
	}
	if c.MaxCount != 0 {
		out["maxCount"] = c.MaxCount
	}
	if len(c.Mapping) > 0 {
		out["mapping"] = c.Mapping
	}
	if c.Hidden != nil {
		out["hidden"] = c.Hidden
	}
	if c.Required != nil {
		out["required"] = c.Required
	}
	if c.ReadOnly != nil {
		out["readOnly"] = c.ReadOnly
	}
	if len(c.TextResourceBindings) > 0 {
		out["textResourceBindings"] = c.TextResourceBindings
	}
	return json.Marshal(out)
}

func decodeBindings(b []byte) (map[string]datamodel.Reference, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]datamodel.Reference, len(raw))
	for key, value := range raw {
		var field string
		if err := json.Unmarshal(value, &field); err == nil {
			out[key] = datamodel.NewReference("", field)
			continue
		}
		var ref datamodel.Reference
		if err := json.Unmarshal(value, &ref); err != nil {
			return nil, fmt.Errorf("binding %q must be a string or a {dataType, field} object", key)
		}
		out[key] = ref
	}
	return out, nil
}

func decodeTexts(b []byte) (map[string]*Expression, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]*Expression, len(raw))
	for key, value := range raw {
		out[key] = NewExpression(value)
	}
	return out, nil
}
