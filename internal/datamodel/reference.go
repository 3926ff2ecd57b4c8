package datamodel

// Reference points into one data document: DataType selects the document and
// Field is a dotted path inside it.
type Reference struct {
	DataType string `json:"dataType"`
	Field    string `json:"field"`
}

// NewReference creates a reference from a data type and dotted field.
func NewReference(dataType, field string) Reference {
	return Reference{DataType: dataType, Field: field}
}

// String renders the reference as `dataType/field`.
func (r Reference) String() string {
	if r.DataType == "" {
		return r.Field
	}
	return r.DataType + "/" + r.Field
}

// IsZero reports whether the reference points nowhere.
func (r Reference) IsZero() bool {
	return r.Field == ""
}

// Path parses the field of the reference.
func (r Reference) Path() (Path, error) {
	return ParsePath(r.Field)
}

// IsResolved reports whether the field carries at least one row index. An
// unparseable field is never resolved.
func (r Reference) IsResolved() bool {
	p, err := r.Path()
	if err != nil {
		return false
	}
	return p.HasIndices()
}

// Unbound strips every row index from the field. An unparseable field is
// returned unchanged.
func (r Reference) Unbound() Reference {
	p, err := r.Path()
	if err != nil {
		return r
	}
	return Reference{DataType: r.DataType, Field: p.Unindexed().String()}
}

// HasPrefix reports whether other addresses a strict ancestor of r in the same
// data document, ignoring row indices.
func (r Reference) HasPrefix(other Reference) bool {
	if r.DataType != other.DataType {
		return false
	}
	p, err := r.Path()
	if err != nil {
		return false
	}
	prefix, err := other.Path()
	if err != nil {
		return false
	}
	return p.HasNamePrefix(prefix)
}

// WithPath returns a copy of r with the field replaced by p.
func (r Reference) WithPath(p Path) Reference {
	return Reference{DataType: r.DataType, Field: p.String()}
}
