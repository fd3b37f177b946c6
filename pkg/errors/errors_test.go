package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapMessage(t *testing.T) {
	err := Wrap(CodeWeather, "failed to fetch weather", errors.New("status=503"))
	require.Equal(t, "failed to fetch weather: status=503", err.Error())
	require.True(t, IsCode(err, CodeWeather))
	require.False(t, IsCode(err, CodeLLM))
}

func TestCodeOfWrappedChain(t *testing.T) {
	inner := Wrap(CodeInvalidInput, "location is required", nil)
	outer := fmt.Errorf("handler: %w", inner)
	require.Equal(t, CodeInvalidInput, CodeOf(outer))
	require.Equal(t, "", CodeOf(errors.New("plain")))
}
