package scan

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHTTPResponse = "HTTP/1.1 200 OK\r\nServer: portgrab-test\r\nContent-Length: 0\r\n\r\n"

// startListener serves handle on a loopback port until the test ends.
func startListener(t *testing.T, handle func(net.Conn)) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				handle(conn)
			}()
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port
}

func httpResponder(conn net.Conn) {
	buf := make([]byte, 512)
	if _, err := conn.Read(buf); err != nil {
		return
	}
	_, _ = conn.Write([]byte(testHTTPResponse))
}

func greeter(greeting string) func(net.Conn) {
	return func(conn net.Conn) {
		_, _ = conn.Write([]byte(greeting))
		_, _ = io.Copy(io.Discard, conn)
	}
}

func silent(conn net.Conn) {
	_, _ = io.Copy(io.Discard, conn)
}
