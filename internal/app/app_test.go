package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/formtree/internal/hcl_adapter"
	"github.com/specialistvlad/formtree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Tree(t *testing.T) {
	a, out, logs := SetupAppTest(t, testutil.Project(), &Config{})

	require.NoError(t, a.Run(context.Background(), &Config{Output: OutputText}))

	text := out.String()
	assert.Contains(t, text, "page form\n  name (Input) Name\n  rep1 (RepeatingGroup) rows=2\n    rep1a-0 (Header)\n")
	assert.Contains(t, text, "        rep1c-input-1-3 (Input) RepGroup[1].NestedRepGroup[3].Input\n")
	assert.Contains(t, text, "page extras\n  likert (Likert) rows=3 Questions.Answer\n    likert-item-0 (LikertItem) Questions[0].Answer\n")
	assert.Contains(t, logs.String(), "Project ready.")
}

func TestRun_TreeHiddenMarkers(t *testing.T) {
	files := testutil.Project()
	files["data/model.json"] = `{"Name": "no extras", "RepGroup": [{"Input": "hide"}]}`
	a, out, _ := SetupAppTest(t, files, &Config{})

	require.NoError(t, a.Run(context.Background(), &Config{Output: OutputText}))
	assert.Contains(t, out.String(), "    rep1b-0 (Input) RepGroup[0].Input hidden\n")
	assert.Contains(t, out.String(), "  t1 (Input) T1 hidden\n")
	assert.Contains(t, out.String(), "  name (Input) Name\n")
}

func TestRun_TreeJSON(t *testing.T) {
	a, out, _ := SetupAppTest(t, testutil.Project(), &Config{})

	require.NoError(t, a.Run(context.Background(), &Config{Output: OutputJSON}))

	var got struct {
		Pages []struct {
			Name  string `json:"name"`
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
	require.Len(t, got.Pages, 2)
	assert.Equal(t, "form", got.Pages[0].Name)
	assert.Equal(t, "name", got.Pages[0].Nodes[0].ID)
}

func TestRun_Expression(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		want   string
		errMsg string
	}{
		{"without row context", Config{Expression: `["concat", ["component", "name"], "!"]`}, "\"Ada!\"\n", ""},
		{"in row context", Config{Expression: `["component", "rep1b"]`, NodeID: "rep1c-input-1-0"}, "\"locked\"\n", ""},
		{"instance and settings", Config{Expression: `["concat", ["instanceContext", "appId"], " ", ["frontendSettings", "theme"], " ", ["language"]]`}, "\"ttd/formtree dark nb\"\n", ""},
		{"json output", Config{Expression: `["plus", 1, 2]`, Output: OutputJSON}, "{\n  \"result\": 3\n}\n", ""},
		{"invalid expression", Config{Expression: `["nope"]`}, "", `unknown function "nope"`},
		{"missing row context", Config{Expression: `["component", "rep1b"]`}, "", "missing row context"},
		{"unknown node", Config{Expression: `true`, NodeID: "rep1b-9"}, "", "node not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			a, out, _ := SetupAppTest(t, testutil.Project(), &cfg)

			err := a.Run(context.Background(), &cfg)
			if tc.errMsg != "" {
				assert.ErrorContains(t, err, tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestRun_Node(t *testing.T) {
	cfg := Config{NodeID: "name"}
	a, out, _ := SetupAppTest(t, testutil.Project(), &cfg)

	require.NoError(t, a.Run(context.Background(), &cfg))
	assert.Equal(t, "id:       name\ntype:     Input\nhidden:   false\nrequired: true\nreadOnly: false\nvalue:    \"Ada\"\ntext title: Navn\n", out.String())

	cfg = Config{NodeID: "rep1c-input-1-2", Output: OutputJSON}
	a, out, _ = SetupAppTest(t, testutil.Project(), &cfg)
	require.NoError(t, a.Run(context.Background(), &cfg))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
	assert.Equal(t, "c", got["value"])
	assert.Equal(t, true, got["properties"].(map[string]any)["readOnly"])
}

func TestRun_Check(t *testing.T) {
	cfg := Config{Check: true}
	a, out, _ := SetupAppTest(t, testutil.Project(), &cfg)
	require.NoError(t, a.Run(context.Background(), &cfg))
	assert.Equal(t, "No problems found.\n", out.String())

	files := testutil.Project()
	files["layouts/extras.json"] = `{"data": {"hidden": ["nope"], "layout": [
		{"id": "g", "type": "Group", "children": ["a", "missing"]},
		{"id": "a", "type": "Input", "hidden": ["component", "b"], "required": ["equals", 1]},
		{"id": "b", "type": "Input", "hidden": ["component", "a"], "readOnly": ["component", "ghost", 0]}
	]}}`

	cfg = Config{Check: true}
	a, out, _ = SetupAppTest(t, files, &cfg)
	err := a.Run(context.Background(), &cfg)
	require.ErrorIs(t, err, ErrCheckFailed)

	text := out.String()
	assert.Contains(t, text, "layout: g -> missing: unknown component\n")
	assert.Contains(t, text, "expression: extras page.hidden: invalid expression")
	assert.Contains(t, text, "expression: a required: invalid expression: equals expects 2 arguments, got 1\n")
	assert.Contains(t, text, "reference: b refers to unknown component \"ghost\"\n")
	assert.Contains(t, text, "cycle: circular component reference: ")

	cfg = Config{Check: true, Output: OutputJSON}
	a, out, _ = SetupAppTest(t, files, &cfg)
	require.ErrorIs(t, a.Run(context.Background(), &cfg), ErrCheckFailed)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out.String()), &report))
	assert.Len(t, report.Problems, 1)
	assert.Len(t, report.InvalidExpressions, 2)
	assert.Equal(t, []unknownReference{{Component: "b", Target: "ghost"}}, report.UnknownReferences)
	assert.NotEmpty(t, report.Cycle)
}

func TestNewApp_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(files map[string]string)
		wantErr string
	}{
		{"broken project file", func(f map[string]string) { f["formtree.hcl"] = "layout_set = " }, "failed to load project"},
		{"missing data document", func(f map[string]string) { delete(f, "data/model.json") }, `failed to read data document "model"`},
		{"malformed data document", func(f map[string]string) { f["data/model.json"] = "{" }, "failed to decode data"},
		{"broken page", func(f map[string]string) { f["layouts/form.json"] = `{"data": {"layout": [{"id": "x"}]}}` }, "failed to load layout set"},
		{"missing texts", func(f map[string]string) { delete(f, "texts/nb.json") }, "failed to read text resources"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			files := testutil.Project()
			tc.mutate(files)
			dir := testutil.WriteFiles(t, files)

			_, err := NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, &Config{ProjectPath: dir}, hcl_adapter.NewLoader())
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
