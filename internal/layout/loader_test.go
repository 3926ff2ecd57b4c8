// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"context"
	"testing"

	"github.com/specialistvlad/formtree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	page, err := DecodePage("p", []byte(testutil.LayoutPages["extras"]))
	require.NoError(t, err)

	assert.Equal(t, "p", page.Name)
	require.True(t, page.Hidden.Valid())
	require.Len(t, page.Components, 7)
	assert.Equal(t, "likert", page.Components[0].ID)
	assert.Len(t, page.Components[1].Tabs, 2)
}

func TestDecodePage_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"malformed", `{"data":`, `failed to decode page "p"`},
		{"missing id", `{"data": {"layout": [{"type": "Input"}]}}`, "component #0 has no id"},
		{"missing type", `{"data": {"layout": [{"id": "a"}]}}`, `component "a" has no type`},
		{"null component", `{"data": {"layout": [null]}}`, "component #0 is null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePage("p", []byte(tc.input))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewSet_FillsDefaultDataType(t *testing.T) {
	page, err := DecodePage("p", []byte(`{"data": {"layout": [
		{"id": "a", "type": "Input", "dataModelBindings": {
			"simpleBinding": "Name",
			"other": {"dataType": "second", "field": "X"}
		}}
	]}}`))
	require.NoError(t, err)

	set := NewSet("model", page)

	a := set.Pages[0].Components[0]
	assert.Equal(t, "model/Name", a.DataModelBindings["simpleBinding"].String())
	assert.Equal(t, "second/X", a.DataModelBindings["other"].String())
	assert.Equal(t, "model", set.DefaultDataType)
}

func TestLoadSet(t *testing.T) {
	files := map[string]string{
		"Settings.json": `{"pages": {"order": ["second", "ghost", "first", "second"]}}`,
		"first.json":    `{"data": {"layout": [{"id": "a", "type": "Input"}]}}`,
		"second.json":   `{"data": {"layout": [{"id": "b", "type": "Input"}]}}`,
		"extra.json":    `{"data": {"layout": []}}`,
		"notes.txt":     `ignored`,
	}
	dir := testutil.WriteFiles(t, files)

	set, err := LoadSet(context.Background(), dir, "model")
	require.NoError(t, err)

	assert.Equal(t, []string{"second", "first", "extra"}, set.PageNames())
	page, ok := set.Page("first")
	require.True(t, ok)
	assert.Equal(t, "a", page.Components[0].ID)

	_, ok = set.Page("ghost")
	assert.False(t, ok)
}

func TestLoadSet_Fixtures(t *testing.T) {
	files := map[string]string{"Settings.json": testutil.LayoutSettings}
	for name, content := range testutil.LayoutPages {
		files[name+".json"] = content
	}
	dir := testutil.WriteFiles(t, files)

	set, err := LoadSet(context.Background(), dir, testutil.DataType)
	require.NoError(t, err)
	assert.Equal(t, []string{"form", "extras"}, set.PageNames())
}

func TestLoadSet_WithoutSettings(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"b.json": `{"data": {"layout": []}}`,
		"a.json": `{"data": {"layout": []}}`,
	})

	set, err := LoadSet(context.Background(), dir, "model")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, set.PageNames())
}

func TestLoadSet_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "duplicate page name",
			files:   map[string]string{"a.json": `{"data": {}}`, "nested/a.json": `{"data": {}}`},
			wantErr: `page "a" is defined more than once`,
		},
		{
			name:    "bad page",
			files:   map[string]string{"a.json": `{`},
			wantErr: `failed to decode page "a"`,
		},
		{
			name:    "bad settings",
			files:   map[string]string{"Settings.json": `{"pages": 1}`},
			wantErr: "failed to decode",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, tc.files)
			_, err := LoadSet(context.Background(), dir, "model")
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
