// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/formtree/internal/datamodel"
)

// ContainerKind is the fixed set of ways a component can hold children.
type ContainerKind int

const (
	// KindNone is a leaf component.
	KindNone ContainerKind = iota
	// KindPlain renders its children once.
	KindPlain
	// KindRepeating renders its children once per row of its group binding.
	KindRepeating
	// KindTabs renders its children grouped into tabs.
	KindTabs
	// KindLikert renders one synthetic item per row of its questions binding.
	KindLikert
)

func (k ContainerKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindRepeating:
		return "repeating"
	case KindTabs:
		return "tabs"
	case KindLikert:
		return "likert"
	default:
		return "none"
	}
}

// Repeats reports whether the kind produces rows.
func (k ContainerKind) Repeats() bool {
	return k == KindRepeating || k == KindLikert
}

// Kind classifies the component.
func (c *Component) Kind() ContainerKind {
	switch c.Type {
	case TypeRepeatingGroup:
		return KindRepeating
	case TypeGroup:
		if c.MaxCount > 1 {
			return KindRepeating
		}
		return KindPlain
	case TypeLikert:
		return KindLikert
	case TypeTabs:
		return KindTabs
	}
	if len(c.Children) > 0 {
		return KindPlain
	}
	return KindNone
}

// GroupBinding returns the binding whose array length is the row count:
// `group` for repeating groups and `questions` for Likert.
func (c *Component) GroupBinding() (datamodel.Reference, bool) {
	switch c.Kind() {
	case KindRepeating:
		return c.Binding(BindingGroup)
	case KindLikert:
		return c.Binding(BindingQuestions)
	default:
		return datamodel.Reference{}, false
	}
}

// IsMultiPage reports whether children are split over several pages of a
// repeating group.
func (c *Component) IsMultiPage() bool {
	return c.Edit != nil && c.Edit.MultiPage && c.Kind() == KindRepeating
}

// ChildRef is one parsed entry of a children list.
type ChildRef struct {
	ID string
	// PageIndex is the multi-page index, -1 when absent.
	PageIndex int
}

// ParseChildRef splits a `pageIndex:childId` entry. Outside multi-page groups
// the entry is taken as a plain id.
func ParseChildRef(entry string, multiPage bool) (ChildRef, error) {
	if !multiPage {
		return ChildRef{ID: entry, PageIndex: -1}, nil
	}
	page, id, found := strings.Cut(entry, ":")
	if !found {
		return ChildRef{ID: entry, PageIndex: -1}, nil
	}
	index, err := strconv.Atoi(page)
	if err != nil || index < 0 {
		return ChildRef{}, fmt.Errorf("invalid multi-page child reference %q", entry)
	}
	if id == "" {
		return ChildRef{}, fmt.Errorf("multi-page child reference %q has no id", entry)
	}
	return ChildRef{ID: id, PageIndex: index}, nil
}
