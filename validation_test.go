package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidation_TypeExclusivity(t *testing.T) {
	integerSchema := mustCompile(t, `{"type": "integer"}`)
	require.True(t, validate(t, integerSchema, `5`))
	require.False(t, validate(t, integerSchema, `5.5`))
	require.False(t, validate(t, integerSchema, `true`))

	numberSchema := mustCompile(t, `{"type": "number"}`)
	require.True(t, validate(t, numberSchema, `5.5`))
	require.False(t, validate(t, numberSchema, `true`))

	arraySchema := mustCompile(t, `{"type": ["string", "null"]}`)
	require.True(t, validate(t, arraySchema, `"x"`))
	require.True(t, validate(t, arraySchema, `null`))
	require.False(t, validate(t, arraySchema, `1`))
}

func TestValidation_ConstRoundTripEquality(t *testing.T) {
	n := mustCompile(t, `{"const": {"a": [1, 2], "b": true}}`)
	require.True(t, validate(t, n, `{"a": [1, 2], "b": true}`))
	require.False(t, validate(t, n, `{"a": [1, 2], "b": 1}`))
	// Member order in the instance must not affect object equality.
	require.True(t, validate(t, n, `{"b": true, "a": [1, 2]}`))
}

func TestValidation_EnumMatchesAnyListedValue(t *testing.T) {
	n := mustCompile(t, `{"enum": [1, "two", null, [3]]}`)
	require.True(t, validate(t, n, `1`))
	require.True(t, validate(t, n, `"two"`))
	require.True(t, validate(t, n, `null`))
	require.True(t, validate(t, n, `[3]`))
	require.False(t, validate(t, n, `2`))
}

func TestValidation_NumericBoundsAndMultipleOf(t *testing.T) {
	n := mustCompile(t, `{
		"minimum": 0, "maximum": 100,
		"exclusiveMinimum": 0, "exclusiveMaximum": 100,
		"multipleOf": 0.1
	}`)
	require.True(t, validate(t, n, `50`))
	require.True(t, validate(t, n, `1.5`))
	require.False(t, validate(t, n, `0`))
	require.False(t, validate(t, n, `100`))
	require.False(t, validate(t, n, `1.05`))
}

func TestValidation_StringBounds(t *testing.T) {
	n := mustCompile(t, `{"minLength": 2, "maxLength": 4, "pattern": "^[a-z]+$"}`)
	require.True(t, validate(t, n, `"abcd"`))
	require.False(t, validate(t, n, `"a"`))
	require.False(t, validate(t, n, `"abcde"`))
	require.False(t, validate(t, n, `"ABC"`))
}

func TestValidation_ArrayBoundsAndUniqueItems(t *testing.T) {
	n := mustCompile(t, `{"minItems": 1, "maxItems": 3, "uniqueItems": true}`)
	require.True(t, validate(t, n, `[1, 2]`))
	require.False(t, validate(t, n, `[]`))
	require.False(t, validate(t, n, `[1, 2, 3, 4]`))
	require.False(t, validate(t, n, `[1, 1]`))
	require.False(t, validate(t, n, `[{"a": 1}, {"a": 1}]`))
}

func TestValidation_ObjectBoundsRequiredAndDependentRequired(t *testing.T) {
	n := mustCompile(t, `{
		"minProperties": 1,
		"required": ["id"],
		"dependentRequired": {"email": ["emailVerified"]}
	}`)
	require.True(t, validate(t, n, `{"id": 1}`))
	require.False(t, validate(t, n, `{}`))
	require.True(t, validate(t, n, `{"id": 1, "email": "x", "emailVerified": true}`))
	require.False(t, validate(t, n, `{"id": 1, "email": "x"}`))
}
