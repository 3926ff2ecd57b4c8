package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/formtree/internal/app"
	"github.com/specialistvlad/formtree/internal/engine"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/formdata"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/nodegen"
	"github.com/specialistvlad/formtree/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// loadState runs the whole loading path: project file, layout set, data and
// texts, then generates the first snapshot.
func loadState(t *testing.T, files map[string]string) (*app.App, *engine.State) {
	t.Helper()
	a, _, _ := app.SetupAppTest(t, files, &app.Config{})
	in := engine.Input{Data: mustSnapshot(t, files["data/model.json"])}
	state, err := a.Engine().Snapshot(context.Background(), in)
	require.NoError(t, err)
	return a, state
}

func mustSnapshot(t *testing.T, data string) *formdata.Snapshot {
	t.Helper()
	s, err := formdata.FromJSON(testutil.DataType, map[string][]byte{testutil.DataType: []byte(data)})
	require.NoError(t, err)
	return s
}

func TestScenario_RowsOfARepeatingGroup(t *testing.T) {
	t.Parallel()

	a, state := loadState(t, testutil.Project())

	for id, want := range map[string]string{"rep1b-0": "RepGroup[0].Input", "rep1b-1": "RepGroup[1].Input"} {
		n, ok := state.Tree().FindByID(id)
		require.True(t, ok)
		ref, ok := n.Binding(layout.BindingSimple)
		require.True(t, ok)
		require.Equal(t, want, ref.Field)
	}

	_, ok := nodegen.MakeIndexedID("rep1b", nil, a.Engine().Table())
	require.False(t, ok, "a repeated component has no id without row context")
}

func TestScenario_StringToNumberCoercion(t *testing.T) {
	t.Parallel()

	files := testutil.Project()
	files["data/model.json"] = `{"Age": "18"}`
	_, state := loadState(t, files)

	v, err := state.Evaluate(expr.MustParseJSON(`["equals", ["dataModel", "Age"], 18]`), "")
	require.NoError(t, err)
	require.True(t, cty.True.RawEquals(v))
}

func TestScenario_NestedGroupBinding(t *testing.T) {
	t.Parallel()

	_, state := loadState(t, testutil.Project())

	n, ok := state.Tree().FindByID("rep1c-input-1-3")
	require.True(t, ok)
	ref, ok := n.Binding(layout.BindingSimple)
	require.True(t, ok)
	require.Equal(t, "RepGroup[1].NestedRepGroup[3].Input", ref.Field)
	require.Equal(t, []int{1, 3}, n.RowIndices())
	require.Equal(t, map[string]string{"RepGroup[1].NestedRepGroup[3].Input": "q"}, n.Item().Mapping)
}

func TestScenario_DataChangesBetweenSnapshots(t *testing.T) {
	t.Parallel()

	a, first := loadState(t, testutil.Project())
	ctx := context.Background()

	second, err := a.Engine().Snapshot(ctx, engine.Input{Data: mustSnapshot(t, `{
		"RepGroup": [
			{"Input": "first"},
			{"Input": "open", "NestedRepGroup": [{"Input": "a"}]},
			{"Input": "locked", "NestedRepGroup": [{"Input": "x"}, {"Input": "y"}]}
		]
	}`)})
	require.NoError(t, err)

	_, ok := first.Tree().FindByID("rep1c-input-2-1")
	require.False(t, ok)
	_, ok = second.Tree().FindByID("rep1c-input-2-1")
	require.True(t, ok)
	_, ok = second.Tree().FindByID("rep1c-input-1-3")
	require.False(t, ok, "rows removed from the data are gone from the tree")

	props, err := second.Properties("rep1c-input-1-0")
	require.NoError(t, err)
	require.False(t, props.ReadOnly)
	props, err = second.Properties("rep1c-input-2-1")
	require.NoError(t, err)
	require.True(t, props.ReadOnly)

	props, err = first.Properties("rep1c-input-1-0")
	require.NoError(t, err)
	require.True(t, props.ReadOnly, "earlier states keep answering for their own snapshot")
}
