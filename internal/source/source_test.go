package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vismutlang/vismut/internal/source"
)

func TestResolveFirstLine(t *testing.T) {
	buf := source.New("m", []byte("abc def"))
	pos := buf.Resolve(4)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 5, pos.Column)
}

func TestResolveMultiLine(t *testing.T) {
	buf := source.New("m", []byte("line1\nline2\nline3"))
	pos := buf.Resolve(12) // 'l' of line3
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 1, pos.Column)

	pos = buf.Resolve(7) // 'i' of line2
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)
}

func TestResolveEndOfSource(t *testing.T) {
	buf := source.New("m", []byte("abc"))
	pos := buf.Resolve(3)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 4, pos.Column)
}

func TestRenderCaret(t *testing.T) {
	buf := source.New("m", []byte("$ x = y;"))
	out := buf.Render(6, 1)
	assert.Contains(t, out, "$ x = y;")
	assert.Contains(t, out, "      ^")
}
