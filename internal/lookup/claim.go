package lookup

import "fmt"

// ClaimKind tells how a container holds a child.
type ClaimKind int

const (
	// ClaimChild is a plain child rendered once.
	ClaimChild ClaimKind = iota
	// ClaimRepeatingChild is a template child rendered once per row.
	ClaimRepeatingChild
	// ClaimTab is a child listed by one tab of a Tabs container.
	ClaimTab
	// ClaimLikertItem is the synthetic row child of a Likert component.
	ClaimLikertItem
)

func (k ClaimKind) String() string {
	switch k {
	case ClaimRepeatingChild:
		return "repeating"
	case ClaimTab:
		return "tab"
	case ClaimLikertItem:
		return "likert-item"
	default:
		return "child"
	}
}

// ClaimMeta describes how a child is held by its parent.
type ClaimMeta struct {
	Kind ClaimKind
	// Position is the index of the child among its parent's children.
	Position int
	// TabIndex is the tab holding the child, -1 outside Tabs.
	TabIndex int
	// MultiPageIndex is the page of a multi-page group, -1 when absent.
	MultiPageIndex int
}

// ChildClaim records that a container holds a child.
type ChildClaim struct {
	ParentID string
	ChildID  string
	Meta     ClaimMeta
}

// Problem is a claim or a component definition that was skipped while
// building the table. A skipped definition has no ParentID and names the page
// it was written on.
type Problem struct {
	ParentID string
	ChildID  string
	Page     string
	Reason   string
}

func (p Problem) String() string {
	if p.ParentID == "" {
		return fmt.Sprintf("%s (page %s): %s", p.ChildID, p.Page, p.Reason)
	}
	return fmt.Sprintf("%s -> %s: %s", p.ParentID, p.ChildID, p.Reason)
}
