package virtopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentCompileInvariants(t *testing.T) {
	err := NewArg("", "prop").compile()
	require.Error(t, err, "an empty name should be rejected")
	assert.ErrorIs(t, err, ErrBadArgument, "failure should carry the bad-argument cause")

	err = NewArg("plain", "").compile()
	require.Error(t, err, "a descriptor needs a prop or a convert callback")
	assert.ErrorIs(t, err, ErrBadArgument, "failure should carry the bad-argument cause")

	convert := func(p *Parser, target Target, val any, arg *BoundArg) error { return nil }
	err = NewArg("plain", "", WithConvert(convert)).compile()
	require.Error(t, err, "a prop-less descriptor must choose its match behavior")

	err = NewArg("plain", "", WithConvert(convert), NoLookup()).compile()
	assert.NoError(t, err, "no-lookup is an explicit match decision")

	lookup := func(p *Parser, target Target, val any, arg *BoundArg) (bool, error) { return true, nil }
	err = NewArg("plain", "", WithConvert(convert), WithLookup(lookup)).compile()
	assert.NoError(t, err, "a lookup callback is an explicit match decision")
}

func TestArgumentNameMatching(t *testing.T) {
	arg := NewArg("cell#.id", "id")
	require.NoError(t, arg.compile(), "pattern compilation should succeed")

	indices, ok := arg.matchName("cell3.id")
	require.True(t, ok, "an indexed spelling should match")
	assert.Equal(t, []int{3}, indices, "the index should be extracted")

	indices, ok = arg.matchName("cell.id")
	require.True(t, ok, "the bare spelling should match")
	assert.Equal(t, []int{0}, indices, "a missing index should default to zero")

	_, ok = arg.matchName("cellX.id")
	assert.False(t, ok, "non-numeric index characters should not match")
	_, ok = arg.matchName("cell3.idx")
	assert.False(t, ok, "a different trailing segment should not match")
	_, ok = arg.matchName("cell3")
	assert.False(t, ok, "a shorter name should not match")
}

func TestArgumentDoubleIndexMatching(t *testing.T) {
	arg := NewArg("cell#.distances.sibling#.value", "value")
	require.NoError(t, arg.compile(), "pattern compilation should succeed")

	indices, ok := arg.matchName("cell1.distances.sibling12.value")
	require.True(t, ok, "a doubly indexed spelling should match")
	assert.Equal(t, []int{1, 12}, indices, "both indices should be extracted in order")
}

func TestArgumentAliasMatching(t *testing.T) {
	arg := NewArg("accessmode", "accessmode", WithAliases("mode"))
	require.NoError(t, arg.compile(), "compilation with aliases should succeed")

	_, ok := arg.matchName("accessmode")
	assert.True(t, ok, "the canonical name should match")
	_, ok = arg.matchName("mode")
	assert.True(t, ok, "the alias should match")
	_, ok = arg.matchName("modes")
	assert.False(t, ok, "a near-miss should not match")
}

func TestArgumentOverlapDetection(t *testing.T) {
	compile := func(name string) *Argument {
		arg := NewArg(name, "prop")
		require.NoError(t, arg.compile(), "compilation should succeed for %q", name)
		return arg
	}

	assert.True(t, compile("color").overlapsWith(compile("color")),
		"identical literals overlap")
	assert.True(t, compile("cell#.id").overlapsWith(compile("cell3.id")),
		"a literal inside a pattern's range overlaps")
	assert.True(t, compile("cell#.id").overlapsWith(compile("cell#.id")),
		"identical patterns overlap")
	assert.False(t, compile("cell#.id").overlapsWith(compile("cell#.cpus")),
		"different trailing segments do not overlap")
	assert.False(t, compile("color").overlapsWith(compile("colour")),
		"distinct literals do not overlap")
	assert.False(t, compile("slot#.id").overlapsWith(compile("cell#.id")),
		"different leading stems do not overlap")
}

func TestBoundArgIndexDefaults(t *testing.T) {
	b := &BoundArg{indices: []int{7}}
	assert.Equal(t, 7, b.Index(0), "the extracted index should be returned")
	assert.Equal(t, 0, b.Index(1), "positions beyond the extraction default to zero")
}
