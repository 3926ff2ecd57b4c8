package formdata

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Snapshot is an immutable set of data documents keyed by data type.
type Snapshot struct {
	defaultType string
	docs        map[string]cty.Value
}

// NewSnapshot wraps already decoded documents. The map is copied.
func NewSnapshot(defaultType string, docs map[string]cty.Value) *Snapshot {
	s := &Snapshot{
		defaultType: defaultType,
		docs:        make(map[string]cty.Value, len(docs)),
	}
	for dataType, doc := range docs {
		s.docs[dataType] = doc
	}
	return s
}

// FromJSON decodes one JSON document per data type.
func FromJSON(defaultType string, docs map[string][]byte) (*Snapshot, error) {
	decoded := make(map[string]cty.Value, len(docs))
	for dataType, raw := range docs {
		v, err := decodeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data document %q: %w", dataType, err)
		}
		decoded[dataType] = v
	}
	return NewSnapshot(defaultType, decoded), nil
}

// FromGo converts plain Go documents (maps, slices, strings, numbers, bools)
// by round-tripping them through JSON.
func FromGo(defaultType string, docs map[string]any) (*Snapshot, error) {
	raw := make(map[string][]byte, len(docs))
	for dataType, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode data document %q: %w", dataType, err)
		}
		raw[dataType] = b
	}
	return FromJSON(defaultType, raw)
}

func decodeJSON(raw []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(raw, ty)
}

// DefaultDataType is used for references that do not name a data type.
func (s *Snapshot) DefaultDataType() string {
	return s.defaultType
}

// DataTypes returns the sorted data types present in the snapshot.
func (s *Snapshot) DataTypes() []string {
	out := make([]string, 0, len(s.docs))
	for dataType := range s.docs {
		out = append(out, dataType)
	}
	sort.Strings(out)
	return out
}

// Document returns the whole document for a data type.
func (s *Snapshot) Document(dataType string) (cty.Value, bool) {
	if dataType == "" {
		dataType = s.defaultType
	}
	doc, ok := s.docs[dataType]
	return doc, ok
}

// Lookup returns the value the reference points at, or a null value when
// nothing is there. Only a malformed field is an error.
func (s *Snapshot) Lookup(ref datamodel.Reference) (cty.Value, error) {
	path, err := ref.Path()
	if err != nil {
		return cty.NullVal(cty.DynamicPseudoType), err
	}
	doc, ok := s.Document(ref.DataType)
	if !ok {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return walk(doc, path), nil
}

// RowCount returns the number of elements of the array at ref. Anything that
// is not an array counts as zero rows.
func (s *Snapshot) RowCount(ref datamodel.Reference) (int, error) {
	v, err := s.Lookup(ref)
	if err != nil {
		return 0, err
	}
	return rowCount(v), nil
}

func rowCount(v cty.Value) int {
	if v.IsNull() || !v.IsKnown() {
		return 0
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return 0
	}
	return v.LengthInt()
}
