package docsmaker_test

import (
	"errors"
	"testing"

	docsmaker "github.com/masterdubs/docs-maker"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsmaker.Errorf(docsmaker.ENOTFOUND, "document %q not found", "abc")

	assert.Equal(t, docsmaker.ENOTFOUND, docsmaker.ErrorCode(err))
	assert.Equal(t, "document \"abc\" not found", docsmaker.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsmaker.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsmaker.EINTERNAL, docsmaker.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsmaker.ErrorMessage(nil))
}
