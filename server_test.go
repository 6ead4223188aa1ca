package main

import (
	"net"
	"testing"

	"resourceshub/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenFallsBackToNextPort(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	ln, err := listen(config.ServerConfig{Port: port, PortAttempts: 5}, zerolog.Nop())
	if err != nil {
		t.Skipf("no free port after %d: %v", port, err)
	}
	defer ln.Close()
	assert.NotEqual(t, port, ln.Addr().(*net.TCPAddr).Port)
}

func TestListenGivesUpAfterAttempts(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	_, err = listen(config.ServerConfig{Port: port, PortAttempts: 1}, zerolog.Nop())
	assert.Error(t, err)
}
