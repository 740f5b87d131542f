package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	log, err := InitLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = InitLogger("loud")
	require.Error(t, err)

	console, err := InitConsoleLogger("warn")
	require.NoError(t, err)
	require.NotNil(t, console)
}
