package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_JSONPointerTokenDecoding(t *testing.T) {
	require.Equal(t, "a/b", decodePointerToken("a~1b"))
	require.Equal(t, "a~b", decodePointerToken("a~0b"))
	require.Equal(t, "a b", decodePointerToken("a%20b"))
	require.Equal(t, "a/b~c", decodePointerToken("a~1b~0c"))
}

func TestResolve_JSONPointerThroughSlashBearingDefsKey(t *testing.T) {
	n := mustCompile(t, `{
		"$defs": {"a/b": {"type": "integer"}},
		"$ref": "#/$defs/a~1b"
	}`)
	require.True(t, validate(t, n, `5`))
	require.False(t, validate(t, n, `"not an int"`))
}

func TestResolve_RefToExternalDocument(t *testing.T) {
	n := mustCompileWithPreload(t, `{
		"$id": "https://example.com/root",
		"$ref": "https://example.com/positive-integer"
	}`, map[string]string{
		"https://example.com/positive-integer": `{
			"$id": "https://example.com/positive-integer",
			"type": "integer",
			"minimum": 0
		}`,
	})
	require.True(t, validate(t, n, `3`))
	require.False(t, validate(t, n, `-3`))
	require.False(t, validate(t, n, `"x"`))
}

func TestResolve_DynamicRefBookending(t *testing.T) {
	tree := `{
		"$id": "https://example.com/tree",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"data": true,
			"children": {
				"type": "array",
				"items": {"$dynamicRef": "#node"}
			}
		}
	}`

	// Validating directly against the base schema: no override is in
	// scope, so an unrecognized property at any depth is still allowed.
	base := mustCompileWithPreload(t, tree, nil)
	require.True(t, validate(t, base, `{
		"data": "root",
		"children": [
			{"data": "child", "children": [], "extra": "allowed here"}
		]
	}`))

	// An extending schema that $refs the base and redeclares the same
	// dynamic anchor with unevaluatedProperties:false. Because $dynamicRef
	// re-resolves against the outermost matching dynamic anchor on the
	// call stack, every recursive "children" level is bound by the
	// extension's stricter shape, not just the top level.
	strict := mustCompileWithPreload(t, `{
		"$id": "https://example.com/strict-tree",
		"$ref": "https://example.com/tree",
		"$dynamicAnchor": "node",
		"unevaluatedProperties": false
	}`, map[string]string{
		"https://example.com/tree": tree,
	})

	require.True(t, validate(t, strict, `{
		"data": "root",
		"children": [
			{"data": "child", "children": []}
		]
	}`))
	require.False(t, validate(t, strict, `{
		"data": "root",
		"children": [
			{"data": "child", "children": [], "extra": "not allowed here"}
		]
	}`))
}
