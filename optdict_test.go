package virtopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictFamily(t *testing.T) *Family {
	t.Helper()

	f := NewFamily("dicttest", WithRemoveFirst("path", "mount"))
	f.AddArg("path", "path").
		AddArg("mount", "mount").
		AddArg("size", "size").
		AddArg("label", "label", SetCanComma(true))
	require.NoError(t, f.err, "family definition should be valid")

	return f
}

func rawOf(t *testing.T, dict *OptDict, key string) string {
	t.Helper()
	val, ok := dict.Get(key)
	require.True(t, ok, "key %q should be present", key)

	return val.Raw
}

func TestBuildOptDictPositionals(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "foo,bar,size=5")
	require.NoError(t, err, "mapping should build")
	assert.Equal(t, "foo", rawOf(t, dict, "path"), "first bare word should take the first positional name")
	assert.Equal(t, "bar", rawOf(t, dict, "mount"), "second bare word should take the second")
	assert.Equal(t, "5", rawOf(t, dict, "size"), "named options should be unaffected")
}

func TestBuildOptDictPositionalsStopAtValuedToken(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "size=5,foo")
	require.NoError(t, err, "mapping should build")
	_, ok := dict.Get("path")
	assert.False(t, ok, "substitution only applies to leading bare words")

	val, ok := dict.Get("foo")
	require.True(t, ok, "the bare word should pass through under its own name")
	assert.False(t, val.HasValue, "a bare word has no value")
}

func TestBuildOptDictCommaAbsorption(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "label=a,b=c,d,size=5")
	require.NoError(t, err, "mapping should build")
	assert.Equal(t, "a,b=c,d", rawOf(t, dict, "label"),
		"tokens up to the next known name should be reconstituted")
	assert.Equal(t, "5", rawOf(t, dict, "size"), "absorption should stop at a known name")
	assert.Equal(t, 2, dict.Len(), "absorbed tokens should not appear as entries")
}

func TestBuildOptDictUnknownPassThrough(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "size=5,mystery=42")
	require.NoError(t, err, "mapping should build even with unknown names")
	assert.Equal(t, "42", rawOf(t, dict, "mystery"),
		"unknown names should be kept verbatim for later reporting")
}

func TestBuildOptDictLastWriteWins(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "size=5,label=x,size=9")
	require.NoError(t, err, "mapping should build")
	assert.Equal(t, "9", rawOf(t, dict, "size"), "the later value should win")
	assert.Equal(t, []string{"size", "label"}, dict.Keys(),
		"overwriting should keep the original position")
}

func TestBuildOptDictEmptyValue(t *testing.T) {
	f := testDictFamily(t)

	dict, err := buildOptDict(f, "size=")
	require.NoError(t, err, "mapping should build")
	val, ok := dict.Get("size")
	require.True(t, ok, "the entry should exist")
	assert.True(t, val.HasValue, "an explicit empty value is still a value")
	assert.Empty(t, val.Raw, "the value itself is empty")
}

func TestBuildOptDictMalformed(t *testing.T) {
	f := testDictFamily(t)

	_, err := buildOptDict(f, `size="5`)
	require.Error(t, err, "an unterminated quote should fail")
	assert.ErrorIs(t, err, ErrMalformedOption, "failure should carry the malformed cause")
}

func TestOptDictCopyIsIndependent(t *testing.T) {
	dict := newOptDict()
	dict.SetRaw("a", "1")
	dict.SetRaw("b", "2")

	cp := dict.copy()
	cp.Pop("a")
	assert.Equal(t, 2, dict.Len(), "the original should be unaffected")
	assert.Equal(t, 1, cp.Len(), "the copy should shrink")
}
