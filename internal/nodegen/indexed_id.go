package nodegen

import (
	"fmt"

	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/lookup"
	"github.com/specialistvlad/formtree/internal/tree"
)

// MakeIndexedID returns the indexed id that baseID has when seen from the row
// context loc. It reports false when the component is unknown, or when it is
// repeated and loc does not hold a row for every repeating container around
// it, which includes a nil loc.
func MakeIndexedID(baseID string, loc *expr.Location, table *lookup.Table) (string, bool) {
	if _, ok := table.Component(baseID); !ok {
		return "", false
	}
	chain := table.RepeatingChain(baseID)
	rows := make([]expr.RowRef, 0, len(chain))
	for _, group := range chain {
		row, ok := loc.RowIndex(group)
		if !ok {
			return "", false
		}
		rows = append(rows, expr.RowRef{GroupID: group, Index: row})
	}
	return tree.IndexedID(baseID, rows), true
}

// PinRows returns a row context in which the repeating groups around baseID
// sit at rows, outermost first. Groups beyond the given rows keep the row
// they have in loc. Giving more rows than baseID has repeating groups is an
// error; a row past the end of its group is not.
func PinRows(baseID string, loc *expr.Location, rows []int, table *lookup.Table) (*expr.Location, error) {
	chain := table.RepeatingChain(baseID)
	if len(rows) > len(chain) {
		return nil, fmt.Errorf("%w: component %q is inside %d repeating groups, got %d row indices",
			expr.ErrInvalidArgument, baseID, len(chain), len(rows))
	}

	pinned := &expr.Location{Rows: make([]expr.RowRef, 0, len(chain))}
	for i, group := range chain {
		if i < len(rows) {
			pinned.Rows = append(pinned.Rows, expr.RowRef{GroupID: group, Index: rows[i]})
			continue
		}
		if row, ok := loc.RowIndex(group); ok {
			pinned.Rows = append(pinned.Rows, expr.RowRef{GroupID: group, Index: row})
		}
	}
	return pinned, nil
}
