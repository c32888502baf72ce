package scope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "splc/internal/core/errors"
)

func TestTableDuplicateBinding(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Bind("V_x", SymbolInfo{Kind: KindVariable, Type: TypeNum, TokenID: 3}))

	err := tbl.Bind("V_x", SymbolInfo{Kind: KindVariable, Type: TypeText, TokenID: 7})
	var se *SemanticError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, RuleDuplicateDeclaration, se.Rule)
	assert.Equal(t, "V_x", se.Name)
	assert.Equal(t, 7, se.TokenID)
	assert.Equal(t, 3, se.Previous)
	assert.True(t, domainerrors.IsCode(err, domainerrors.CodeSemantic))

	sym, ok := tbl.LookupLocal("V_x")
	require.True(t, ok)
	assert.Equal(t, TypeNum, sym.Type, "failed bind leaves the frame unchanged")
}

func TestTableShadowing(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Bind("V_x", SymbolInfo{Kind: KindVariable, Type: TypeNum, InternalName: "v0"}))

	tbl.PushScope("F_f")
	require.NoError(t, tbl.Bind("V_x", SymbolInfo{Kind: KindVariable, Type: TypeText, InternalName: "v1"}))

	sym, ok := tbl.LookupVisible("V_x")
	require.True(t, ok)
	assert.Equal(t, "v1", sym.InternalName, "nearest declaration wins")
	assert.Equal(t, 1, sym.Depth)

	require.NoError(t, tbl.PopScope())
	sym, ok = tbl.LookupVisible("V_x")
	require.True(t, ok)
	assert.Equal(t, "v0", sym.InternalName)

	_, ok = tbl.LookupVisible("V_nothing")
	assert.False(t, ok)
}

func TestTableGlobalFrameNeverPops(t *testing.T) {
	tbl := NewTable()
	err := tbl.PopScope()
	require.Error(t, err)
	assert.True(t, domainerrors.IsCode(err, domainerrors.CodeInternal))
	assert.Equal(t, 1, tbl.Depth())
	assert.Equal(t, GlobalOwner, tbl.Current().Owner)
}

func TestTableClosedFrames(t *testing.T) {
	tbl := NewTable()
	tbl.PushScope("F_a")
	require.NoError(t, tbl.Bind("V_p", SymbolInfo{Kind: KindVariable, Type: TypeNum}))
	tbl.PushScope("F_b")
	require.NoError(t, tbl.Bind("V_q", SymbolInfo{Kind: KindVariable, Type: TypeNum}))
	require.NoError(t, tbl.PopScope())
	require.NoError(t, tbl.PopScope())

	closed := tbl.Closed()
	require.Len(t, closed, 2)
	assert.Equal(t, "F_b", closed[0].Owner)
	assert.Equal(t, 2, closed[0].Depth)
	assert.Equal(t, "F_a", closed[1].Owner)
	assert.Len(t, tbl.Frames(), 3)
	assert.Equal(t, 2, tbl.Len())

	_, ok := tbl.LookupVisible("V_p")
	assert.False(t, ok, "closed frames are not visible")
}
