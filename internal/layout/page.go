// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"encoding/json"
	"fmt"
)

// Page is one named page of a layout set.
type Page struct {
	Name       string
	Hidden     *Expression
	Components []*Component
}

// pageFile is the on-disk shape of a page.
type pageFile struct {
	Data struct {
		Hidden json.RawMessage `json:"hidden"`
		Layout []*Component    `json:"layout"`
	} `json:"data"`
}

// DecodePage parses one page file. Every component needs an id and a type.
func DecodePage(name string, b []byte) (*Page, error) {
	var file pageFile
	if err := json.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("failed to decode page %q: %w", name, err)
	}

	page := &Page{Name: name, Components: file.Data.Layout}
	if len(file.Data.Hidden) > 0 && string(file.Data.Hidden) != "null" {
		page.Hidden = NewExpression(file.Data.Hidden)
	}
	for i, c := range page.Components {
		if c == nil {
			return nil, fmt.Errorf("page %q: component #%d is null", name, i)
		}
		if c.ID == "" {
			return nil, fmt.Errorf("page %q: component #%d has no id", name, i)
		}
		if c.Type == "" {
			return nil, fmt.Errorf("page %q: component %q has no type", name, c.ID)
		}
	}
	return page, nil
}

// Set is every page of one form, in display order.
type Set struct {
	Pages           []*Page
	DefaultDataType string
}

// NewSet assembles pages. Bindings without a data type are assigned
// defaultDataType; the pages are owned by the set afterwards.
func NewSet(defaultDataType string, pages ...*Page) *Set {
	for _, page := range pages {
		for _, c := range page.Components {
			for key, ref := range c.DataModelBindings {
				if ref.DataType == "" {
					ref.DataType = defaultDataType
					c.DataModelBindings[key] = ref
				}
			}
		}
	}
	return &Set{Pages: pages, DefaultDataType: defaultDataType}
}

// Page returns the page with the given name.
func (s *Set) Page(name string) (*Page, bool) {
	for _, p := range s.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// PageNames returns page names in display order.
func (s *Set) PageNames() []string {
	names := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		names[i] = p.Name
	}
	return names
}
