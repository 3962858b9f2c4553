package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, Kind(""), KindOf(nil))
	require.Equal(t, KindValidation, KindOf(Validation("region code is required")))
	require.Equal(t, KindNotFound, KindOf(fmt.Errorf("repo: %w", ErrNotFound)))
	require.Equal(t, KindConflict, KindOf(ErrConflict))
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("outer: %w", Wrap(KindStorage, "photo upload failed", errors.New("timeout")))
	require.Equal(t, KindStorage, KindOf(wrapped))
}

func TestMessage_HidesInternalDetails(t *testing.T) {
	require.Equal(t, "internal error", Message(errors.New("pq: connection refused")))
	require.Equal(t, "internal error", Message(Wrap(KindInternal, "db exploded", nil)))
	require.Equal(t, "photo upload failed", Message(Wrap(KindStorage, "photo upload failed", errors.New("timeout"))))
	require.Equal(t, "not found", Message(ErrNotFound))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(KindStorage, "photo upload failed", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "photo upload failed: timeout", err.Error())
}
