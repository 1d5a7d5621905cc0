// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/ChemSDS/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"empty smiles", errors.ErrCodeInputEmptySMILES, "SMILES string is required"},
		{"invalid smiles", errors.ErrCodeInputInvalidSMILES, "unbalanced ring bond"},
		{"precondition", errors.ErrCodeHazardPrecondition, "classify called before gather"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestError_FormatIncludesCodeAndDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeInputInvalidSMILES, "Invalid SMILES format")
	assert.Equal(t, "[INPUT_002] Invalid SMILES format", ae.Error())

	withDetail := ae.WithDetail("smiles=C1CC")
	assert.Equal(t, "[INPUT_002] Invalid SMILES format: smiles=C1CC", withDetail.Error())
	assert.Empty(t, ae.Detail, "WithDetail must not mutate the receiver")
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	result := errors.Wrap(nil, errors.CodeInternal, "should not matter")
	assert.Nil(t, result)
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("connection refused")
	mid := errors.Wrap(root, errors.ErrCodeDataSourceUnavailable, "pubchem lookup failed")
	top := errors.Wrap(mid, errors.ErrCodePropertySourceFailed, "gather aborted")

	require.NotNil(t, top)
	assert.True(t, stderrors.Is(top, root), "errors.Is should traverse to the root cause")

	var ae *errors.AppError
	require.True(t, stderrors.As(top, &ae))
	assert.Equal(t, errors.ErrCodePropertySourceFailed, ae.Code)
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	t.Parallel()

	orig := errors.New(errors.ErrCodeInputInvalidSMILES, "bad input")
	wrapped := errors.Wrap(orig, errors.CodeUnknown, "adding context only")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.ErrCodeInputInvalidSMILES, wrapped.Code,
		"CodeUnknown wrap must keep the original classification")
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()

	root := errors.New(errors.ErrCodePropertyTimeout, "deadline exceeded")
	wrapped := fmt.Errorf("gather: %w", root)

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodePropertyTimeout))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodePropertyUnavailable))
	assert.False(t, errors.IsCode(nil, errors.ErrCodePropertyTimeout))
}

func TestIsInvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"empty smiles", errors.New(errors.ErrCodeInputEmptySMILES, "required"), true},
		{"invalid smiles wrapped", fmt.Errorf("resolve: %w", errors.New(errors.ErrCodeInputInvalidSMILES, "bad")), true},
		{"section out of range", errors.New(errors.ErrCodeInputInvalidSection, "17"), true},
		{"timeout is not input", errors.New(errors.ErrCodePropertyTimeout, "slow"), false},
		{"plain error", stderrors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsInvalidInput(tc.err))
		})
	}
}

func TestIsPrecondition(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsPrecondition(errors.New(errors.ErrCodeHazardPrecondition, "")))
	assert.True(t, errors.IsPrecondition(errors.New(errors.ErrCodeDocumentPrecondition, "")))
	assert.False(t, errors.IsPrecondition(errors.New(errors.ErrCodeConflict, "")))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.NotFound("missing")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeDocumentNotFound, "no sheet")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeDataSourceNoMatch, "no CID")))
	assert.False(t, errors.IsNotFound(errors.Internal("boom")))
	assert.False(t, errors.IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", errors.New(errors.ErrCodeDocumentRenderFailed, "pdf"))
	assert.Equal(t, errors.ErrCodeDocumentRenderFailed, errors.GetCode(wrapped))
}

func TestStack_ContainsThisFile(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	assert.True(t, strings.Contains(ae.Stack, "errors_test.go"),
		"stack should record the creation site")
}

//Personal.AI order the ending
