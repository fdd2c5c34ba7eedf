package errutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = errors.New("required input missing")

func TestScope(t *testing.T) {
	err := Scope(errSample, "inputs", "projectName")
	assert.Equal(t, "inputs/projectName", AsScope(err))
	assert.Equal(t, "inputs/projectName: required input missing", err.Error())
	assert.ErrorIs(t, err, errSample)
}

func TestScopeNested(t *testing.T) {
	err := Scope(Scope(errSample, "projectName"), "inputs")
	assert.Equal(t, "inputs/projectName", AsScope(err))
	assert.ErrorIs(t, err, errSample)
}

func TestScopeNil(t *testing.T) {
	assert.NoError(t, Scope(nil, "inputs"))
}

func TestAsScopeUnscoped(t *testing.T) {
	assert.Equal(t, "", AsScope(errSample))
}

func TestSlice(t *testing.T) {
	var errs Slice
	assert.NoError(t, errs.ErrOrNil())

	errs.Add(nil, errors.New("a"), nil, errors.New("b"))
	assert.Len(t, errs, 2)
	assert.EqualError(t, errs.ErrOrNil(), "a; b")
}
