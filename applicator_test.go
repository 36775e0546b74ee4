package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicator_AllOfIdentity(t *testing.T) {
	// An empty allOf is vacuously satisfied by anything (identity element).
	n := mustCompile(t, `{"allOf": []}`)
	require.True(t, validate(t, n, `"anything"`))
}

func TestApplicator_AllOfConjunction(t *testing.T) {
	n := mustCompile(t, `{
		"allOf": [
			{"type": "integer"},
			{"minimum": 0},
			{"maximum": 10}
		]
	}`)
	require.True(t, validate(t, n, `5`))
	require.False(t, validate(t, n, `11`))
	require.False(t, validate(t, n, `"5"`))
}

func TestApplicator_AnyOfMonotonicity(t *testing.T) {
	n := mustCompile(t, `{
		"anyOf": [
			{"type": "string"},
			{"type": "integer"}
		]
	}`)
	require.True(t, validate(t, n, `"x"`))
	require.True(t, validate(t, n, `5`))
	require.False(t, validate(t, n, `1.5`))
	require.False(t, validate(t, n, `true`))
}

func TestApplicator_OneOfExactlyOneBranch(t *testing.T) {
	n := mustCompile(t, `{
		"oneOf": [
			{"type": "number", "multipleOf": 2},
			{"type": "number", "multipleOf": 3}
		]
	}`)
	require.True(t, validate(t, n, `4`))
	require.True(t, validate(t, n, `9`))
	require.False(t, validate(t, n, `6`))
	require.False(t, validate(t, n, `5`))
}

func TestApplicator_Not(t *testing.T) {
	n := mustCompile(t, `{"not": {"type": "null"}}`)
	require.True(t, validate(t, n, `1`))
	require.False(t, validate(t, n, `null`))
}

func TestApplicator_IfThenElse(t *testing.T) {
	n := mustCompile(t, `{
		"if": {"type": "string"},
		"then": {"minLength": 3},
		"else": {"minimum": 100}
	}`)
	require.True(t, validate(t, n, `"abc"`))
	require.False(t, validate(t, n, `"ab"`))
	require.True(t, validate(t, n, `150`))
	require.False(t, validate(t, n, `50`))
}

func TestApplicator_PrefixItemsAndItems(t *testing.T) {
	n := mustCompile(t, `{
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`)
	require.True(t, validate(t, n, `["x", 1, true, false]`))
	require.False(t, validate(t, n, `["x", 1, "not-bool"]`))
	require.False(t, validate(t, n, `[1, "x"]`))
}

func TestApplicator_Contains(t *testing.T) {
	n := mustCompile(t, `{
		"contains": {"type": "integer"},
		"minContains": 2,
		"maxContains": 3
	}`)
	require.True(t, validate(t, n, `[1, "x", 2]`))
	require.False(t, validate(t, n, `["x", "y"]`))
	require.False(t, validate(t, n, `[1, 2, 3, 4]`))
}

func TestApplicator_PropertiesPatternAdditional(t *testing.T) {
	n := mustCompile(t, `{
		"properties": {"name": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "boolean"}},
		"additionalProperties": false
	}`)
	require.True(t, validate(t, n, `{"name": "a", "x-flag": true}`))
	require.False(t, validate(t, n, `{"name": "a", "extra": 1}`))
	require.False(t, validate(t, n, `{"name": 1}`))
	require.False(t, validate(t, n, `{"x-flag": "not-bool"}`))
}

func TestApplicator_DependentSchemas(t *testing.T) {
	n := mustCompile(t, `{
		"dependentSchemas": {
			"credit_card": {"required": ["billing_address"]}
		}
	}`)
	require.True(t, validate(t, n, `{"credit_card": "1234", "billing_address": "x"}`))
	require.False(t, validate(t, n, `{"credit_card": "1234"}`))
	require.True(t, validate(t, n, `{"name": "no card at all"}`))
}

func TestApplicator_PropertyNames(t *testing.T) {
	n := mustCompile(t, `{"propertyNames": {"pattern": "^[a-z]+$"}}`)
	require.True(t, validate(t, n, `{"abc": 1, "def": 2}`))
	require.False(t, validate(t, n, `{"ABC": 1}`))
}
