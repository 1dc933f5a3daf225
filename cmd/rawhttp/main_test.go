package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePort(t *testing.T) {
	port, err := parsePort("8080")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	for _, bad := range []string{"", "0", "-1", "65536", "80a", "http"} {
		_, err := parsePort(bad)
		assert.Error(t, err, bad)
	}
}

func TestRootCmdRequiresOneArg(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, nil))
	require.Error(t, rootCmd.Args(rootCmd, []string{"1", "2"}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"8080"}))
}
