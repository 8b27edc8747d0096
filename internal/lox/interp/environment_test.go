package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox/interp"
)

func TestEnvironmentGetAtFollowsExactHopCount(t *testing.T) {
	globals := interp.NewGlobalEnvironment()
	globals.Define("x", interp.String("global"))

	outer := interp.NewEnclosedEnvironment(globals)
	outer.Define("x", interp.String("outer"))

	inner := interp.NewEnclosedEnvironment(outer)
	inner.Define("x", interp.String("inner"))

	assert.Equal(t, interp.String("inner"), inner.GetAt(0, "x"))
	assert.Equal(t, interp.String("outer"), inner.GetAt(1, "x"))

	v, err := inner.Get("x")
	require.NoError(t, err)
	assert.Equal(t, interp.String("inner"), v)
}

func TestEnvironmentAssignAtWritesExactFrame(t *testing.T) {
	globals := interp.NewGlobalEnvironment()
	outer := interp.NewEnclosedEnvironment(globals)
	inner := interp.NewEnclosedEnvironment(outer)
	outer.Define("x", interp.Number(1))

	inner.AssignAt(1, "x", interp.Number(2))

	assert.Equal(t, interp.Number(2), outer.GetAt(0, "x"))
}

func TestEnvironmentGetUndefinedReturnsError(t *testing.T) {
	globals := interp.NewGlobalEnvironment()
	_, err := globals.Get("missing")
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}

func TestEnvironmentAssignUndefinedReturnsError(t *testing.T) {
	globals := interp.NewGlobalEnvironment()
	err := globals.Assign("missing", interp.Nil{})
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}
