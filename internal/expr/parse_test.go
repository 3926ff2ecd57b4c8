package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Valid(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		canonical string
	}{
		{"string constant", `"hello"`, `"hello"`},
		{"number constant is canonical", `1.50`, `1.5`},
		{"null constant", `null`, `null`},
		{"boolean constant", `true`, `true`},
		{"simple call", `["equals", ["dataModel", "Age"], 18]`, `["equals",["dataModel","Age"],18]`},
		{"if with else", `["if", true, "a", "else", "b"]`, `["if",true,"a","else","b"]`},
		{"variadic and", `["and", true, false, ["not", false]]`, `["and",true,false,["not",false]]`},
		{"concat without arguments", `["concat"]`, `["concat"]`},
		{"boolean from numeric string", `["not", "1"]`, `["not","1"]`},
		{"number from numeric string", `["plus", "2", 3]`, `["plus","2",3]`},
		{"component with explicit rows", `["component", "x", 0, 2]`, `["component","x",0,2]`},
		{"component with computed row", `["component", "x", ["argv", 0]]`, `["component","x",["argv",0]]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := ParseJSON([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.canonical, e.String())

			again, err := ParseJSON([]byte(e.String()))
			require.NoError(t, err)
			assert.Equal(t, e.String(), again.String())
		})
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantPath  string
		wantIssue string
	}{
		{"unknown function", `["nope", 1]`, "[0]", `unknown function "nope"`},
		{"too few arguments", `["equals", 1]`, "", "equals expects 2 arguments, got 1"},
		{"too many arguments", `["not", true, false]`, "", "not expects 1 arguments, got 2"},
		{"if with three arguments", `["if", true, "a", "b"]`, "", "if expects 2 or 4 arguments, got 3"},
		{"if without else keyword", `["if", true, "a", "otherwise", "b"]`, "[3]", `expected "else"`},
		{"number where boolean is required", `["not", 5]`, "[1]", "5 cannot be used as boolean"},
		{"text where number is required", `["greaterThan", "abc", 1]`, "[1]", `"abc" cannot be used as number`},
		{"nested problem", `["and", true, ["not", 5]]`, "[2][1]", "cannot be used as boolean"},
		{"negative component row", `["component", "x", -1]`, "[2]", "-1 is not a row index"},
		{"fractional component row", `["component", "x", 1.5]`, "[2]", "1.5 is not a row index"},
		{"null component row", `["component", "x", 0, null]`, "[3]", "row index cannot be null"},
		{"text component row", `["component", "x", "abc"]`, "[2]", `"abc" cannot be used as number`},
		{"component without id", `["component"]`, "", "component expects at least 1 arguments, got 0"},
		{"object", `{"a": 1}`, "", "an object is not a valid expression"},
		{"empty array", `[]`, "", "an empty array is not a valid expression"},
		{"non-string head", `[1, 2]`, "[0]", "function name must be a string"},
		{"malformed JSON", `["equals", `, "", "malformed JSON"},
		{"trailing data", `true false`, "", "unexpected data after expression"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tc.input))
			require.Error(t, err)

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr), "expected *ValidationError, got %T", err)
			require.NotEmpty(t, valErr.Issues)
			assert.Equal(t, tc.wantPath, valErr.Issues[0].Path)
			assert.Contains(t, valErr.Issues[0].Message, tc.wantIssue)
		})
	}
}

func TestParse_CollectsAllIssues(t *testing.T) {
	_, err := ParseJSON([]byte(`["and", ["nope"], ["not", 5], ["equals", 1]]`))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Issues, 3)
	assert.ErrorContains(t, err, "invalid expression: ")
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("just text"))
	assert.True(t, IsValid(nil))
	assert.True(t, IsValid([]any{"or", true, []any{"component", "nonexistent"}}))
	assert.False(t, IsValid([]any{"or"}))
	assert.False(t, IsValid(map[string]any{}))
}

func TestMustParseJSON_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseJSON(`["nope"]`) })
}
