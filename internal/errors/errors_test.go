package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adaptly/practicekit/internal/errors"
)

func TestHasCode_NilError(t *testing.T) {
	assert.False(t, errors.HasCode(nil, errors.CodeValidation))
}

func TestHasCode_DirectAppError(t *testing.T) {
	err := errors.NewValidationError("k", "must be positive")
	assert.True(t, errors.HasCode(err, errors.CodeValidation))
	assert.False(t, errors.HasCode(err, errors.CodeStoreRead))
}

func TestHasCode_NestedAppError(t *testing.T) {
	inner := errors.NewStoreReadError(fmt.Errorf("timeout"))
	outer := errors.NewWriteError(errors.CodeWriteHistory, inner)

	assert.True(t, errors.HasCode(outer, errors.CodeWriteHistory))
	assert.True(t, errors.HasCode(outer, errors.CodeStoreRead))
	assert.False(t, errors.HasCode(outer, errors.CodeWriteProfile))
}

func TestHasCode_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("completing session: %w", errors.NewStoreReadError(fmt.Errorf("timeout")))
	assert.True(t, errors.HasCode(err, errors.CodeStoreRead))
}

func TestHasCode_FindsEveryJoinedBranch(t *testing.T) {
	joined := stderrors.Join(
		errors.NewWriteError(errors.CodeWriteHistory, fmt.Errorf("disk full")),
		errors.NewWriteError(errors.CodeWriteProfile, fmt.Errorf("disk full")),
	)

	// Every failed category must be visible, not just the first branch.
	assert.True(t, errors.HasCode(joined, errors.CodeWriteHistory))
	assert.True(t, errors.HasCode(joined, errors.CodeWriteProfile))
	assert.False(t, errors.HasCode(joined, errors.CodeWriteMastery))
}

func TestHasCode_JoinedWithPlainError(t *testing.T) {
	joined := stderrors.Join(
		fmt.Errorf("plain"),
		errors.NewWriteError(errors.CodeWriteMastery, fmt.Errorf("disk full")),
	)
	assert.True(t, errors.HasCode(joined, errors.CodeWriteMastery))
}
