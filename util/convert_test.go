package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertString(t *testing.T) {
	var s string
	require.NoError(t, ConvertString("hello", &s), "string conversion should succeed")
	assert.Equal(t, "hello", s, "string should pass through")

	var list []string
	require.NoError(t, ConvertString("a,b|c d", &list), "list conversion should succeed")
	assert.Equal(t, []string{"a", "b", "c", "d"}, list, "all three separators should split")

	var b bool
	require.NoError(t, ConvertString("true", &b), "bool conversion should succeed")
	assert.True(t, b, "true should parse")
	assert.Error(t, ConvertString("yep", &b), "a non-bool token should fail")

	var i int
	require.NoError(t, ConvertString("42", &i), "int conversion should succeed")
	assert.Equal(t, 42, i, "int should parse")

	var f float64
	require.NoError(t, ConvertString("2.5", &f), "float conversion should succeed")
	assert.Equal(t, 2.5, f, "float should parse")
	assert.Error(t, ConvertString("big", &f), "a non-numeric token should fail")

	var ts time.Time
	require.NoError(t, ConvertString("2024-01-15", &ts), "date conversion should succeed")
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local), ts,
		"dates should parse in local time")

	var d time.Duration
	require.NoError(t, ConvertString("1h30m", &d), "duration conversion should succeed")
	assert.Equal(t, 90*time.Minute, d, "duration should parse")
}

func TestConvertStringUnsupported(t *testing.T) {
	var c complex128
	err := ConvertString("1", &c)
	require.Error(t, err, "unsupported targets should fail")
	assert.ErrorIs(t, err, ErrUnsupportedType, "failure should carry the unsupported cause")
}
