package nodegen

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
)

// level is one repeating container and the row being generated in it.
type level struct {
	groupID string
	// binding is the group binding, already indexed by the outer levels.
	binding datamodel.Reference
	row     int
}

// frame is the row context of the component being generated, outermost
// level first. A frame is never modified; push returns a new one.
type frame struct {
	levels []level
}

func (f frame) push(l level) frame {
	levels := make([]level, len(f.levels), len(f.levels)+1)
	copy(levels, f.levels)
	return frame{levels: append(levels, l)}
}

func (f frame) rows() []expr.RowRef {
	if len(f.levels) == 0 {
		return nil
	}
	out := make([]expr.RowRef, len(f.levels))
	for i, l := range f.levels {
		out[i] = expr.RowRef{GroupID: l.groupID, Index: l.row}
	}
	return out
}

// rowBinding is the innermost group binding pointing at the current row.
func (f frame) rowBinding() datamodel.Reference {
	if len(f.levels) == 0 {
		return datamodel.Reference{}
	}
	last := f.levels[len(f.levels)-1]
	p, err := last.binding.Path()
	if err != nil {
		return datamodel.Reference{}
	}
	return last.binding.WithPath(p.WithRow(last.row))
}

func (f frame) rewriteRef(ref datamodel.Reference) (datamodel.Reference, error) {
	if _, err := ref.Path(); err != nil {
		return ref, err
	}
	for _, l := range f.levels {
		var err error
		if ref, err = datamodel.RewriteFieldForRow(ref, l.binding, l.row); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// rewriteMapping replaces the placeholder `[{L}]` of level L (outermost is 0)
// with the row of that level.
func (f frame) rewriteMapping(mapping map[string]string) map[string]string {
	if len(mapping) == 0 || len(f.levels) == 0 {
		return mapping
	}
	out := make(map[string]string, len(mapping))
	for key, value := range mapping {
		for depth, l := range f.levels {
			key = strings.ReplaceAll(key, "[{"+strconv.Itoa(depth)+"}]", "["+strconv.Itoa(l.row)+"]")
		}
		out[key] = value
	}
	return out
}

// bindingError is a binding dropped from a generated item.
type bindingError struct {
	key string
	err error
}

// rewrite clones c for the frame: the id becomes indexedID and every binding
// and mapping key is pointed at the current rows. A binding that is not a
// valid path is left out of the clone and returned in dropped.
func (f frame) rewrite(c *layout.Component, indexedID string) (item *layout.Component, dropped []bindingError) {
	item = c.Clone()
	item.ID = indexedID
	for _, key := range item.BindingKeys() {
		ref, err := f.rewriteRef(item.DataModelBindings[key])
		if err != nil {
			delete(item.DataModelBindings, key)
			dropped = append(dropped, bindingError{key: key, err: err})
			continue
		}
		item.DataModelBindings[key] = ref
	}
	item.Mapping = f.rewriteMapping(item.Mapping)
	return item, dropped
}
