package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamastub/internal/server"
)

func TestPromptPort(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int
		invalid  int
		wantsErr bool
	}{
		{name: "empty keeps default", input: "\n", want: 11435},
		{name: "explicit port", input: "8080\n", want: 8080},
		{name: "surrounding spaces", input: "  9000  \n", want: 9000},
		{name: "retry after garbage", input: "abc\n8080\n", want: 8080, invalid: 1},
		{name: "retry after out of range", input: "0\n70000\n\n", want: 11435, invalid: 2},
		{name: "last line without newline", input: "9001", want: 9001},
		{name: "end of input", input: "", wantsErr: true},
		{name: "garbage then end of input", input: "abc", invalid: 1, wantsErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptPort(bufio.NewReader(strings.NewReader(tt.input)), &out, 11435)

			if tt.wantsErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, io.EOF)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Contains(t, out.String(), "Port to bind [default 11435]: ")
			assert.Equal(t, tt.invalid, strings.Count(out.String(), "Please enter a valid port between 1 and 65535."))
		})
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestBindWithPromptAsksForAnotherPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	busyPort := busy.Addr().(*net.TCPAddr).Port
	free := freePort(t)

	srv := server.New(nil)
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(fmt.Sprintf("%d\n", free)))

	require.NoError(t, bindWithPrompt(srv, "127.0.0.1", busyPort, in, &out))
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	assert.Equal(t, free, srv.Port())
	assert.Contains(t, out.String(), fmt.Sprintf("Port %d is already in use.", busyPort))
	assert.Contains(t, out.String(), fmt.Sprintf("Port to bind [default %d]: ", busyPort))
}

func TestBindWithPromptAbortsWhenInputEnds(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	var out bytes.Buffer
	err = bindWithPrompt(server.New(nil), "127.0.0.1", busy.Addr().(*net.TCPAddr).Port,
		bufio.NewReader(strings.NewReader("")), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBindWithPromptReturnsOtherErrors(t *testing.T) {
	var out bytes.Buffer
	err := bindWithPrompt(server.New(nil), "127.0.0.1", -1, bufio.NewReader(strings.NewReader("8080\n")), &out)
	require.Error(t, err)

	var bindErr *server.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.False(t, bindErr.InUse())
	assert.Empty(t, out.String())
}
