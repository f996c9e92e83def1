package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vismutlang/vismut/internal/types"
)

func TestCastPermissions(t *testing.T) {
	assert.True(t, types.IsCastAllowed(types.I64, types.I64, false))
	assert.True(t, types.IsCastAllowed(types.I64, types.F64, false))
	assert.False(t, types.IsCastAllowed(types.F64, types.I64, false))
	assert.True(t, types.IsCastAllowed(types.F64, types.I64, true))
	assert.False(t, types.IsCastAllowed(types.STR, types.I64, true))
}

func TestCommonType(t *testing.T) {
	ct, ok := types.CommonType(types.I64, types.F64)
	assert.True(t, ok)
	assert.Equal(t, types.F64, ct)

	ct, ok = types.CommonType(types.F64, types.I64)
	assert.True(t, ok)
	assert.Equal(t, types.F64, ct)

	_, ok = types.CommonType(types.STR, types.I64)
	assert.False(t, ok)
}

func TestBinaryRules(t *testing.T) {
	r, ok := types.LookupBinary(types.Div, types.I64, types.I64)
	assert.True(t, ok)
	assert.Equal(t, types.F64, r)

	r, ok = types.LookupBinary(types.IDiv, types.I64, types.I64)
	assert.True(t, ok)
	assert.Equal(t, types.I64, r)

	_, ok = types.LookupBinary(types.Add, types.STR, types.I64)
	assert.False(t, ok)
}

func TestUnaryRules(t *testing.T) {
	r, ok := types.UnaryResult(types.Not, types.F64)
	assert.True(t, ok)
	assert.Equal(t, types.I64, r)

	_, ok = types.UnaryResult(types.BNot, types.F64)
	assert.False(t, ok)
}
