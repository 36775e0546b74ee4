package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Value {
	t.Helper()
	v, err := ParseValue([]byte(text))
	require.NoError(t, err)
	return v
}

func mustCompile(t *testing.T, text string) *Node {
	t.Helper()
	n, err := Compile(mustParse(t, text), nil)
	require.NoError(t, err)
	return n
}

func mustCompileWithPreload(t *testing.T, text string, preload map[string]string) *Node {
	t.Helper()
	docs := make(map[string]Value, len(preload))
	for uri, raw := range preload {
		docs[uri] = mustParse(t, raw)
	}
	n, err := Compile(mustParse(t, text), docs)
	require.NoError(t, err)
	return n
}

func validate(t *testing.T, n *Node, instanceText string) bool {
	t.Helper()
	ok, err := Validate(context.Background(), n, mustParse(t, instanceText))
	require.NoError(t, err)
	return ok
}

func TestCompile_BooleanSchemaTrueAcceptsEverything(t *testing.T) {
	n := mustCompile(t, `true`)
	require.True(t, validate(t, n, `42`))
	require.True(t, validate(t, n, `null`))
	require.True(t, validate(t, n, `{"a":1}`))
}

func TestCompile_BooleanSchemaFalseRejectsEverything(t *testing.T) {
	n := mustCompile(t, `false`)
	require.False(t, validate(t, n, `42`))
	require.False(t, validate(t, n, `null`))
	require.False(t, validate(t, n, `{}`))
}

func TestCompile_Determinism(t *testing.T) {
	n := mustCompile(t, `{"type":"string","minLength":2}`)
	instance := mustParse(t, `"ab"`)
	first, err := Validate(context.Background(), n, instance)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		ok, err := Validate(context.Background(), n, instance)
		require.NoError(t, err)
		require.Equal(t, first, ok)
	}
}

func TestCompile_DefsAndLocalRef(t *testing.T) {
	n := mustCompile(t, `{
		"$defs": {"pos": {"type": "integer", "minimum": 0}},
		"$ref": "#/$defs/pos"
	}`)
	require.True(t, validate(t, n, `5`))
	require.False(t, validate(t, n, `-1`))
	require.False(t, validate(t, n, `"nope"`))
}

func TestCompile_RejectsMalformedPropertiesKeyword(t *testing.T) {
	_, err := Compile(mustParse(t, `{"properties": 1}`), nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "properties", schemaErr.Keyword)
}

func TestCompile_AnchorRef(t *testing.T) {
	n := mustCompile(t, `{
		"$defs": {
			"pos": {"$anchor": "positive", "type": "integer", "minimum": 0}
		},
		"$ref": "#positive"
	}`)
	require.True(t, validate(t, n, `3`))
	require.False(t, validate(t, n, `-3`))
}
