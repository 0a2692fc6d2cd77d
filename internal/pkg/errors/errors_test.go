package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithDetailsKeepsSentinel(t *testing.T) {
	detailed := ErrStationNotFound.WithDetails(map[string]interface{}{"stop_id": "x"})

	assert.Nil(t, ErrStationNotFound.Details)
	assert.Equal(t, "x", detailed.Details["stop_id"])
	assert.True(t, stderrors.Is(detailed, ErrStationNotFound))
	assert.False(t, stderrors.Is(detailed, ErrChainNotFound))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("suggest cities: %w", ErrChainNotFound)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "CHAIN_NOT_FOUND: Chain not found", appErr.Error())

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}
