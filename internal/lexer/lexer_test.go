package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/lexer"
	"github.com/vismutlang/vismut/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	a := arena.New()
	l := lexer.New("(test)", []byte(src), a)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "i64 f64 str foobar _x2")
	assert.Equal(t, []token.Kind{
		token.TypeI64, token.TypeF64, token.TypeStr, token.Ident, token.Ident, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "foobar", toks[3].Str)
	assert.Equal(t, "_x2", toks[4].Str)
}

func TestNumericBases(t *testing.T) {
	toks := scanAll(t, "0x1F 0b101 0o17 42")
	require.Len(t, toks, 5)
	assert.Equal(t, int64(31), toks[0].Int)
	assert.Equal(t, int64(5), toks[1].Int)
	assert.Equal(t, int64(15), toks[2].Int)
	assert.Equal(t, int64(42), toks[3].Int)
}

func TestFloatLiterals(t *testing.T) {
	toks := scanAll(t, "1.5 10.5e6 1e-3 2.")
	assert.Equal(t, token.FloatLiteral, toks[0].Kind)
	assert.Equal(t, 1.5, toks[0].Float)
	assert.Equal(t, token.FloatLiteral, toks[1].Kind)
	assert.Equal(t, 10.5e6, toks[1].Float)
	assert.Equal(t, token.FloatLiteral, toks[2].Kind)
	assert.Equal(t, 1e-3, toks[2].Float)
	// "2." with no trailing digit and no following digit is not
	// consumed as part of the number; it tokenizes as INT "2" then
	// DOT.
	assert.Equal(t, token.IntLiteral, toks[3].Kind)
	assert.Equal(t, token.Dot, toks[4].Kind)
}

func TestIntOverflow(t *testing.T) {
	a := arena.New()
	l := lexer.New("(test)", []byte("9223372036854775807"), a)
	_, err := l.Next()
	require.NoError(t, err)

	l2 := lexer.New("(test)", []byte("9223372036854775808"), a)
	_, err = l2.Next()
	require.Error(t, err)
}

func TestStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\t\"c\\d"`)
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Equal(t, "a\nb\t\"c\\d", toks[0].Str)
}

func TestUnterminatedString(t *testing.T) {
	a := arena.New()
	l := lexer.New("(test)", []byte(`"abc`), a)
	_, err := l.Next()
	require.Error(t, err)
}

func TestUnknownEscape(t *testing.T) {
	a := arena.New()
	l := lexer.New("(test)", []byte(`"\q"`), a)
	_, err := l.Next()
	require.Error(t, err)
}

func TestBlockComments(t *testing.T) {
	toks := scanAll(t, "1 /* block */ 2")
	assert.Equal(t, []token.Kind{token.IntLiteral, token.IntLiteral, token.EOF}, kinds(toks))
}

func TestSlashSlashIsFloorDivisionNotAComment(t *testing.T) {
	// Required by the seed suite (spec §8 scenario 3): "//" must
	// tokenize as the floor-division operator, not a line comment.
	toks := scanAll(t, "7 // 2")
	assert.Equal(t, []token.Kind{token.IntLiteral, token.SlashSl, token.IntLiteral, token.EOF}, kinds(toks))
}

func TestTripleSlashIsLineCommentToEOL(t *testing.T) {
	// "//" and line comments coexist: a third consecutive slash
	// upgrades floor-division into a line comment read to EOL.
	toks := scanAll(t, "1 /// trailing comment\n2")
	assert.Equal(t, []token.Kind{token.IntLiteral, token.IntLiteral, token.EOF}, kinds(toks))
}

func TestTripleSlashAtEOFWithNoTrailingNewline(t *testing.T) {
	toks := scanAll(t, "1 /// comment with no newline")
	assert.Equal(t, []token.Kind{token.IntLiteral, token.EOF}, kinds(toks))
}

func TestUnterminatedBlockComment(t *testing.T) {
	a := arena.New()
	l := lexer.New("(test)", []byte("1 /* never closed"), a)
	_, err := l.Next()
	require.NoError(t, err) // the leading int token scans fine
	// skipSpaceAndComments on the *next* call hangs at EOF inside the
	// comment and must report an error rather than silently emitting EOF.
	_, err = l.Next()
	require.Error(t, err)
}

func TestOperatorsMaximalMunch(t *testing.T) {
	toks := scanAll(t, "** // == != <= >= && || << >> -> => ++ -- ::")
	assert.Equal(t, []token.Kind{
		token.StarStar, token.SlashSl, token.EqEq, token.NotEq, token.LtEq, token.GtEq,
		token.AndAnd, token.OrOr, token.Shl, token.Shr, token.Arrow, token.FatArrow,
		token.PlusPlus, token.MinusMin, token.PrintSigil, token.EOF,
	}, kinds(toks))
}

func TestTokenSpansCoverSource(t *testing.T) {
	src := "$ x = 1 + 2;"
	toks := scanAll(t, src)
	var reassembled []byte
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		reassembled = append(reassembled, []byte(src[tok.Span.Offset:tok.Span.Offset+tok.Span.Length])...)
	}
	assert.Equal(t, "$x=1+2;", string(reassembled))
}
