package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated:  http.StatusUnauthorized,
		KindProfileNotFound:  http.StatusNotFound,
		KindDuplicatePhone:   http.StatusBadRequest,
		KindDuplicateSubject: http.StatusBadRequest,
		KindValidation:       http.StatusUnprocessableEntity,
		KindUnavailable:      http.StatusServiceUnavailable,
		KindInternal:         http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.Code())
	}
}

func TestKindOfWrappedError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(KindDuplicatePhone, "phone already registered", cause))

	require.True(t, Is(err, KindDuplicatePhone))
	assert.ErrorIs(t, err, cause)

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "phone already registered", appErr.Message)
}

func TestKindOfUntypedError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindInternal))
}
