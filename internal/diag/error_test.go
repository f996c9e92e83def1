package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismutlang/vismut/internal/diag"
)

func TestKindStringRendersWireName(t *testing.T) {
	assert.Equal(t, "SYMBOL_NOT_DEFINED", diag.KindSymbolNotDefined.String())
	assert.Equal(t, "Kind(999)", diag.Kind(999).String())
}

func TestKindCodeIsItsOrdinal(t *testing.T) {
	assert.Equal(t, int(diag.KindIO), diag.KindIO.Code())
}

func TestErrorStringBeforeResolveUsesOffset(t *testing.T) {
	e := diag.New(diag.KindUnexpectedToken, "mod.vm", 12, 3, "unexpected %q", "}")
	assert.Equal(t, `mod.vm:12: UNEXPECTED_TOKEN: unexpected "}"`, e.Error())
}

func TestErrorStringAfterResolveUsesLineColumn(t *testing.T) {
	e := diag.New(diag.KindUnexpectedToken, "mod.vm", 12, 3, "unexpected %q", "}")
	e.Line, e.Column = 2, 5
	assert.Equal(t, `mod.vm:2:5: UNEXPECTED_TOKEN: unexpected "}"`, e.Error())
}

func TestWrapPreservesCauseForErrorsIs(t *testing.T) {
	cause := errors.New("disk full")
	e := diag.Wrap(diag.KindIO, "mod.vm", 0, 0, cause, "reading source")
	assert.True(t, errors.Is(e, cause))
}

func TestNewFormatsMessage(t *testing.T) {
	e := diag.New(diag.KindNumberOverflow, "mod.vm", 0, 0, "value %d overflows i64", int64(1)<<62)
	require.Contains(t, e.Message, "overflows i64")
}
