package datamodel

// RewriteFieldForRow inserts `[row]` right after the groupBinding prefix of ref.
//
// The reference is returned unchanged when it belongs to another data type,
// when its field is not nested under the group field, when it already carries
// an index at that position, or when it is the group binding itself: the group
// binding names the row collection and is never indexed into itself.
func RewriteFieldForRow(ref, groupBinding Reference, row int) (Reference, error) {
	if ref.DataType != groupBinding.DataType {
		return ref, nil
	}

	field, err := ref.Path()
	if err != nil {
		return ref, err
	}
	group, err := groupBinding.Path()
	if err != nil {
		return ref, err
	}

	if len(group) == 0 || len(field) <= len(group) {
		return ref, nil
	}
	last := len(group) - 1
	for i := 0; i < last; i++ {
		if field[i] != group[i] {
			return ref, nil
		}
	}
	if field[last].Name != group[last].Name || field[last].HasIndex() {
		return ref, nil
	}

	out := field.Clone()
	out[last].Index = row
	return ref.WithPath(out), nil
}

// Transpose gives target the row indices of context wherever their leading
// segments share names. Transposing stops at the first differing name, or at a
// target segment that already carries a different index.
//
// Example: Transpose(`Group.Other`, `Group[2].Field`) is `Group[2].Other`.
func Transpose(target, context Path) Path {
	out := target.Clone()
	for i := range out {
		if i >= len(context) || out[i].Name != context[i].Name {
			break
		}
		if out[i].HasIndex() {
			if out[i].Index != context[i].Index {
				break
			}
			continue
		}
		out[i].Index = context[i].Index
	}
	return out
}
