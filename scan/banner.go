package scan

import (
	"net"
	"strings"
	"time"
)

const (
	bannerRequest = "HEAD / HTTP/1.1\r\n\r\n"
	bannerSize    = 1024
)

// grabBanner sends a bare HTTP HEAD line and reads whatever comes back. If
// the write or the read fails, one more read is attempted without writing.
// The whole exchange shares a single deadline of timeout.
func grabBanner(conn net.Conn, timeout time.Duration) string {

	_ = conn.SetDeadline(time.Now().Add(effectiveTimeout(timeout)))

	buf := make([]byte, bannerSize)

	if _, err := conn.Write([]byte(bannerRequest)); err == nil {
		n, err := conn.Read(buf)
		if err == nil || n > 0 {
			return decodeBanner(buf[:n])
		}
	}

	n, _ := conn.Read(buf)
	return decodeBanner(buf[:n])
}

// decodeBanner converts raw bytes to text, dropping invalid UTF-8 sequences.
// Well-formed runes, U+FFFD included, are kept.
func decodeBanner(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}
