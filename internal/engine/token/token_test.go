package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Class: ReservedKeyword, Word: "begin"}, "begin"},
		{Token{Class: ReservedKeyword, Word: "<"}, "<"},
		{Token{Class: Variable, Word: "V_x"}, "V"},
		{Token{Class: Function, Word: "F_go"}, "F"},
		{Token{Class: Number, Word: "-1.5"}, "N"},
		{Token{Class: Text, Word: `"Hello"`}, "T"},
		{EOF(9), "$"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.tok.Terminal(), tc.tok.String())
	}
}

func TestClassRoundTrip(t *testing.T) {
	for c := ReservedKeyword; c <= EndOfInput; c++ {
		parsed, err := ParseClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := ParseClass("bogus")
	assert.Error(t, err)
}

func TestFromWords(t *testing.T) {
	toks := FromWords(`main text V_s , begin print "Hi" ; V_n = -0.5 ; end $`)
	require.Len(t, toks, 14)

	assert.Equal(t, 1, toks[0].ID)
	assert.Equal(t, ReservedKeyword, toks[0].Class)
	assert.Equal(t, Variable, toks[2].Class)
	assert.Equal(t, Text, toks[6].Class)
	assert.Equal(t, Number, toks[10].Class)
	assert.Equal(t, EndOfInput, toks[13].Class)
	assert.Equal(t, 14, toks[13].ID)
}
