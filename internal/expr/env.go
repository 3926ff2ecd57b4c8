package expr

import (
	"fmt"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/zclconf/go-cty/cty"
)

// DefaultLanguage is reported by the language function when the Env has none.
const DefaultLanguage = "nb"

// DataSource gives read access to the form data documents.
type DataSource interface {
	Lookup(ref datamodel.Reference) (cty.Value, error)
	DefaultDataType() string
}

// ComponentResolver returns the value of another component, as seen from the
// row context loc. loc may be nil when the expression has no row context.
// rows, when not empty, are explicit row indices for the repeating groups
// around the component, outermost first, and take precedence over loc.
type ComponentResolver interface {
	ComponentValue(baseID string, loc *Location, rows []int) (cty.Value, error)
}

// TextLookup resolves a text resource key.
type TextLookup func(key string) (string, bool)

// Instance is the read-only instance metadata.
type Instance struct {
	ID            string `json:"instanceId"`
	AppID         string `json:"appId"`
	PartyID       string `json:"instanceOwnerPartyId"`
	PartyType     string `json:"instanceOwnerPartyType"`
	ProcessTaskID string `json:"processTaskId"`
}

func (i *Instance) value(key string) (cty.Value, error) {
	var v string
	switch key {
	case "instanceId":
		if i != nil {
			v = i.ID
		}
	case "appId":
		if i != nil {
			v = i.AppID
		}
	case "instanceOwnerPartyId", "partyId":
		if i != nil {
			v = i.PartyID
		}
	case "instanceOwnerPartyType":
		if i != nil {
			v = i.PartyType
		}
	case "processTaskId":
		if i != nil {
			v = i.ProcessTaskID
		}
	default:
		return nullString, fmt.Errorf("%w: unknown instance context key %q", ErrInvalidArgument, key)
	}
	if v == "" {
		return nullString, nil
	}
	return cty.StringVal(v), nil
}

// RowRef is one repeating ancestor of a node and the row the node sits in.
type RowRef struct {
	GroupID string
	Index   int
}

// Location is the row context an expression is evaluated in.
type Location struct {
	// NodeID is the indexed id of the node that owns the expression.
	NodeID string
	// Row is a binding of that node carrying its row indices, used to
	// transpose relative dataModel paths.
	Row datamodel.Reference
	// Rows lists the repeating ancestors, outermost first.
	Rows []RowRef
}

// RowIndex returns the row of groupID in the location, if any.
func (l *Location) RowIndex(groupID string) (int, bool) {
	if l == nil {
		return 0, false
	}
	for _, r := range l.Rows {
		if r.GroupID == groupID {
			return r.Index, true
		}
	}
	return 0, false
}

// Env is everything an expression may read. The zero value is usable: every
// lookup simply finds nothing.
type Env struct {
	Data       DataSource
	Components ComponentResolver
	Instance   *Instance
	Settings   map[string]string
	Texts      TextLookup
	Language   string
	Location   *Location
	// Args are the positional values read by argv.
	Args []cty.Value
}

// WithLocation returns a copy of env evaluating in loc.
func (env Env) WithLocation(loc *Location) *Env {
	env.Location = loc
	return &env
}

// WithArgs returns a copy of env with positional arguments.
func (env Env) WithArgs(args ...cty.Value) *Env {
	env.Args = args
	return &env
}

func (env *Env) language() string {
	if env.Language == "" {
		return DefaultLanguage
	}
	return env.Language
}

// lookupData reads a field, giving it the row indices of the current location
// when both live in the same data type.
func (env *Env) lookupData(dataType, field string) (cty.Value, error) {
	if env.Data == nil {
		return nullAny, nil
	}
	if dataType == "" {
		dataType = env.Data.DefaultDataType()
	}
	path, err := datamodel.ParsePath(field)
	if err != nil {
		return nullAny, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if loc := env.Location; loc != nil && !loc.Row.IsZero() {
		rowType := loc.Row.DataType
		if rowType == "" {
			rowType = env.Data.DefaultDataType()
		}
		if rowType == dataType {
			if rowPath, err := loc.Row.Path(); err == nil {
				path = datamodel.Transpose(path, rowPath)
			}
		}
	}

	v, err := env.Data.Lookup(datamodel.NewReference(dataType, path.String()))
	if err != nil {
		return nullAny, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return normalize(v), nil
}
