package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "user 7 not found")
	require.Equal(t, NotFound, KindOf(err))
	require.Equal(t, "user 7 not found", err.Error())

	wrapped := fmt.Errorf("create booking: %w", New(Conflict, "email taken"))
	require.Equal(t, Conflict, KindOf(wrapped))

	require.Equal(t, Kind(""), KindOf(errors.New("plain")))
	require.Equal(t, Kind(""), KindOf(nil))
}
