package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnevaluated_PropertiesCoverage(t *testing.T) {
	n := mustCompile(t, `{
		"properties": {"name": {"type": "string"}},
		"unevaluatedProperties": false
	}`)
	require.True(t, validate(t, n, `{"name": "a"}`))
	require.False(t, validate(t, n, `{"name": "a", "extra": 1}`))
}

func TestUnevaluated_PropertiesSeesAllOfBranchCoverage(t *testing.T) {
	n := mustCompile(t, `{
		"allOf": [{"properties": {"a": {"type": "integer"}}}],
		"properties": {"b": {"type": "string"}},
		"unevaluatedProperties": false
	}`)
	require.True(t, validate(t, n, `{"a": 1, "b": "x"}`))
	require.False(t, validate(t, n, `{"a": 1, "b": "x", "c": 1}`))
}

func TestUnevaluated_PropertiesSeesRefBranchCoverage(t *testing.T) {
	n := mustCompile(t, `{
		"$defs": {"named": {"properties": {"name": {"type": "string"}}}},
		"$ref": "#/$defs/named",
		"unevaluatedProperties": false
	}`)
	require.True(t, validate(t, n, `{"name": "a"}`))
	require.False(t, validate(t, n, `{"name": "a", "extra": 1}`))
}

func TestUnevaluated_ItemsCoverage(t *testing.T) {
	n := mustCompile(t, `{
		"prefixItems": [{"type": "string"}],
		"unevaluatedItems": false
	}`)
	require.True(t, validate(t, n, `["x"]`))
	require.False(t, validate(t, n, `["x", 1]`))
}

func TestUnevaluated_ItemsSeesContainsCoverage(t *testing.T) {
	n := mustCompile(t, `{
		"contains": {"type": "integer"},
		"unevaluatedItems": false
	}`)
	require.True(t, validate(t, n, `[1]`))
	require.False(t, validate(t, n, `[1, "uncovered"]`))
}
