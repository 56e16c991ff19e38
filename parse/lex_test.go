package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOptionTuples_Basic(t *testing.T) {
	tuples, err := OptionTuples("path=foo,size=5,path=bar")
	require.NoError(t, err)
	assert.Equal(t, []Tuple{
		{"path", "foo", true},
		{"size", "5", true},
		{"path", "bar", true},
	}, tuples, "duplicate names must be preserved in order")
}

func TestOptionTuples_ValuePresence(t *testing.T) {
	tuples, err := OptionTuples("readonly,serial=,bus=virtio")
	require.NoError(t, err)
	require.Len(t, tuples, 3)

	assert.False(t, tuples[0].HasValue, "bare name must be reported as having no value")
	assert.True(t, tuples[1].HasValue, "name= must be reported as an explicit empty value")
	assert.Empty(t, tuples[1].Value)
	assert.Equal(t, "virtio", tuples[2].Value)
}

func TestOptionTuples_QuotedCommas(t *testing.T) {
	tuples, err := OptionTuples(`label="system_u:object_r,s0",model=dac`)
	require.NoError(t, err)
	require.Len(t, tuples, 2, "a quoted comma must not split the value")
	assert.Equal(t, "label", tuples[0].Name)
	assert.Equal(t, "system_u:object_r,s0", tuples[0].Value)

	tuples, err = OptionTuples(`path='/tmp/with space',size=5`)
	require.NoError(t, err)
	require.Len(t, tuples, 2)
	assert.Equal(t, "/tmp/with space", tuples[0].Value, "single quotes preserve spaces")
}

func TestOptionTuples_DelimiterAfterQuote(t *testing.T) {
	tuples, err := OptionTuples(`label='a',bus=ide`)
	require.NoError(t, err)
	require.Len(t, tuples, 2, "the comma right after a closing quote must still delimit")
	assert.Equal(t, Tuple{"label", "a", true}, tuples[0])
	assert.Equal(t, Tuple{"bus", "ide", true}, tuples[1])

	tuples, err = OptionTuples(`label="a"x,bus=ide`)
	require.NoError(t, err)
	require.Len(t, tuples, 2, "text adjoining a closing quote stays in the same token")
	assert.Equal(t, "ax", tuples[0].Value)
}

func TestOptionTuples_EqualsInsideQuotes(t *testing.T) {
	tuples, err := OptionTuples(`path='a=b'`)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "path", tuples[0].Name, "split happens on the first = after dequoting")
	assert.Equal(t, "a=b", tuples[0].Value)
}

func TestOptionTuples_BackslashEscape(t *testing.T) {
	tuples, err := OptionTuples(`label=a\,b,bus=ide`)
	require.NoError(t, err)
	require.Len(t, tuples, 2)
	assert.Equal(t, "a,b", tuples[0].Value)

	tuples, err = OptionTuples(`label="a\"b"`)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, `a"b`, tuples[0].Value, `backslash escapes '"' inside double quotes`)
}

func TestOptionTuples_EmptyFieldsDropped(t *testing.T) {
	tuples, err := OptionTuples(",path=foo,,bus=ide,")
	require.NoError(t, err)
	require.Len(t, tuples, 2, "empty fields between delimiters are skipped")

	tuples, err = OptionTuples("")
	require.NoError(t, err)
	assert.Empty(t, tuples)
}

func TestOptionTuples_UnterminatedQuote(t *testing.T) {
	_, err := OptionTuples(`label="unclosed`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = OptionTuples(`label='unclosed`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = OptionTuples(`label=trailing\`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

// For any option string with N unquoted top-level commas, the tokenizer
// must produce N+1 tuples.
func TestOptionTuples_CommaCountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fields := rapid.SliceOfN(
			rapid.StringMatching(`[a-z][a-z0-9_.]{0,8}(=[a-zA-Z0-9/:_.-]{0,8})?`),
			1, 10,
		).Draw(t, "fields")

		tuples, err := OptionTuples(strings.Join(fields, ","))
		if err != nil {
			t.Fatalf("tokenizer failed on clean input: %v", err)
		}
		if len(tuples) != len(fields) {
			t.Fatalf("got %d tuples for %d comma-separated fields", len(tuples), len(fields))
		}
	})
}

func TestSplit(t *testing.T) {
	args, err := Split(`-machine q35 -name 'my vm'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-machine", "q35", "-name", "my vm"}, args)
}
