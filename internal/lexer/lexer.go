// Package lexer implements the Vismut tokenizer (spec §4.2): a
// byte-stream scanner producing one token at a time, driven by a
// 256-entry class table, with explicit handling for numeric bases,
// string escapes, block comments, and line comments. "//" tokenizes as
// the floor-division operator; a third consecutive "/" upgrades it to
// a line comment read to end-of-line instead (see DESIGN.md,
// open-question decision on comment syntax).
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/token"
)

// Lexer is the state kept during lexical scanning of one source
// buffer. It is single-threaded and non-restartable from arbitrary
// positions, but supports a full Reset to the start (spec §4.2).
type Lexer struct {
	module string
	src    []byte
	arena  *arena.Arena
	pos    int
}

// New creates a Lexer over src. module names the source for
// diagnostics; a is where interned identifiers and string contents
// are allocated.
func New(module string, src []byte, a *arena.Arena) *Lexer {
	return &Lexer{module: module, src: src, arena: a}
}

// Reset rewinds the Lexer to the start of its source.
func (l *Lexer) Reset() { l.pos = 0 }

type opDef struct {
	str  string
	kind token.Kind
}

// operators is the full punctuation/operator token set (spec §6),
// listed two-character operators first. Maximal munch does not depend
// on this order: the scan loop below tries lengths in descending order
// regardless of table order.
var operators = []opDef{
	{"**", token.StarStar},
	{"//", token.SlashSl},
	{"==", token.EqEq},
	{"!=", token.NotEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"++", token.PlusPlus},
	{"--", token.MinusMin},
	{"::", token.PrintSigil},
	{"!#", token.ElseIfSigil},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBrack},
	{"]", token.RBrack},
	{"(", token.LParen},
	{")", token.RParen},
	{";", token.Semi},
	{",", token.Comma},
	{".", token.Dot},
	{":", token.Colon},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"?", token.Quest},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"$", token.DeclSigil},
	{"#", token.IfSigil},
	{"@", token.WhileSigil},
	{"!", token.ElseSigil},
}

var keywords = map[string]token.Kind{
	"i64":  token.TypeI64,
	"f64":  token.TypeF64,
	"str":  token.TypeStr,
	"void": token.TypeVoid,
}

func (l *Lexer) errf(kind diag.Kind, offset, length int, format string, args ...interface{}) error {
	return diag.New(kind, l.module, offset, length, format, args...)
}

func (l *Lexer) peekByte(ahead int) (byte, bool) {
	i := l.pos + ahead
	if i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

// Next scans and returns the next token, or an error describing the
// first lexical failure encountered (spec §4.2: the tokenizer does
// not recover).
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token.Token{}, err
	}
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Span: token.Span{Offset: l.pos, Length: 0}}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch classTable[c] {
	case classAlpha:
		return l.scanIdentOrKeyword(start), nil
	case classDigit:
		return l.scanNumber(start)
	case classQuote:
		return l.scanString(start)
	default:
		return l.scanOperator(start)
	}
}

// skipSpaceAndComments advances past whitespace, block comments, and
// "///" line comments. An unterminated block comment is returned as
// an error, which Next() passes straight to its caller.
func (l *Lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if classTable[c] == classSpace {
			l.pos++
			continue
		}
		if c == '/' {
			if n, ok := l.peekByte(1); ok && n == '*' {
				start := l.pos
				l.pos += 2
				closed := false
				for l.pos+1 < len(l.src) {
					if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
						l.pos += 2
						closed = true
						break
					}
					l.pos++
				}
				if !closed {
					l.pos = len(l.src)
					return l.errf(diag.KindUnexpectedSymbol, start, l.pos-start, "unterminated block comment")
				}
				continue
			}
			// Maximal munch past the two slashes that make "//"
			// floor-division: a third consecutive "/" upgrades it to a
			// line comment read to end-of-line instead.
			if n, ok := l.peekByte(1); ok && n == '/' {
				if n2, ok := l.peekByte(2); ok && n2 == '/' {
					l.pos += 3
					for l.pos < len(l.src) && l.src[l.pos] != '\n' {
						l.pos++
					}
					continue
				}
			}
		}
		break
	}
	return nil
}

func isIdentByte(c byte) bool {
	return classTable[c] == classAlpha || classTable[c] == classDigit
}

func (l *Lexer) scanIdentOrKeyword(start int) token.Token {
	l.pos++
	for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	span := token.Span{Offset: start, Length: l.pos - start}
	if kind, ok := keywordByLength(lexeme); ok {
		return token.Token{Kind: kind, Span: span}
	}
	return token.Token{Kind: token.Ident, Span: span, Str: l.arena.InternString(lexeme)}
}

// keywordByLength dispatches the tiny keyword set by length first, as
// spec §4.2 prescribes, before falling back to a full string compare.
func keywordByLength(lexeme string) (token.Kind, bool) {
	if len(lexeme) != 3 && len(lexeme) != 4 {
		return 0, false
	}
	kind, ok := keywords[lexeme]
	return kind, ok
}

func (l *Lexer) scanNumber(start int) (token.Token, error) {
	if l.src[l.pos] == '0' {
		if n, ok := l.peekByte(1); ok {
			switch n {
			case 'x', 'X':
				return l.scanRadix(start, 2, 16, isHexDigit)
			case 'b', 'B':
				return l.scanRadix(start, 2, 2, isBinDigit)
			case 'o', 'O':
				return l.scanRadix(start, 2, 8, isOctDigit)
			}
		}
	}
	return l.scanDecimal(start)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }

func (l *Lexer) scanRadix(start, prefixLen, base int, digit func(byte) bool) (token.Token, error) {
	l.pos = start + prefixLen
	digitsStart := l.pos
	for l.pos < len(l.src) && digit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == digitsStart {
		span := token.Span{Offset: start, Length: l.pos - start}
		return token.Token{}, l.errf(diag.KindUnknownNumberFormat, start, span.Length, "malformed numeric literal")
	}
	text := string(l.src[digitsStart:l.pos])
	v, err := strconv.ParseInt(text, base, 64)
	span := token.Span{Offset: start, Length: l.pos - start}
	if err != nil {
		return token.Token{}, l.errf(diag.KindNumberOverflow, start, span.Length, "integer literal overflows i64: %s", string(l.src[start:l.pos]))
	}
	return token.Token{Kind: token.IntLiteral, Span: span, Int: v}, nil
}

func (l *Lexer) scanDecimal(start int) (token.Token, error) {
	for l.pos < len(l.src) && classTable[l.src[l.pos]] == classDigit {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		// A lone '.' follows by another '.' is not part of a number
		// (reserved for future range syntax); only consume if a digit
		// follows.
		if n, ok := l.peekByte(1); ok && classTable[n] == classDigit {
			isFloat = true
			l.pos++
			for l.pos < len(l.src) && classTable[l.src[l.pos]] == classDigit {
				l.pos++
			}
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && classTable[l.src[p]] == classDigit {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && classTable[l.src[l.pos]] == classDigit {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	text := string(l.src[start:l.pos])
	span := token.Span{Offset: start, Length: l.pos - start}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, l.errf(diag.KindNumberParse, start, span.Length, "malformed float literal %q", text)
		}
		return token.Token{Kind: token.FloatLiteral, Span: span, Float: f}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return token.Token{}, l.errf(diag.KindNumberOverflow, start, span.Length, "integer literal overflows i64: %s", text)
		}
		return token.Token{}, l.errf(diag.KindNumberParse, start, span.Length, "malformed integer literal %q", text)
	}
	return token.Token{Kind: token.IntLiteral, Span: span, Int: v}, nil
}

func (l *Lexer) scanString(start int) (token.Token, error) {
	l.pos++ // consume opening quote
	var buf strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, l.errf(diag.KindUnexpectedSymbol, start, l.pos-start, "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token.Token{}, l.errf(diag.KindUnexpectedSymbol, start, l.pos-start, "unterminated string literal")
			}
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case '"':
				buf.WriteByte('"')
			case '\'':
				buf.WriteByte('\'')
			case '\\':
				buf.WriteByte('\\')
			case '0':
				buf.WriteByte(0)
			default:
				return token.Token{}, l.errf(diag.KindUnexpectedSymbol, l.pos-1, 2, "unknown escape sequence '\\%c'", esc)
			}
			l.pos++
			continue
		}
		buf.WriteByte(c)
		l.pos++
	}
	span := token.Span{Offset: start, Length: l.pos - start}
	return token.Token{Kind: token.StringLiteral, Span: span, Str: l.arena.InternString(buf.String())}, nil
}

func (l *Lexer) scanOperator(start int) (token.Token, error) {
	remaining := l.src[l.pos:]
	for length := 3; length >= 1; length-- {
		if length > len(remaining) {
			continue
		}
		candidate := string(remaining[:length])
		for _, def := range operators {
			if def.str == candidate {
				l.pos += length
				return token.Token{Kind: def.kind, Span: token.Span{Offset: start, Length: length}}, nil
			}
		}
	}
	r, size := utf8.DecodeRune(remaining)
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	l.pos += size
	return token.Token{}, l.errf(diag.KindUnknownSymbol, start, size, "unknown symbol %q", string(remaining[:size]))
}
