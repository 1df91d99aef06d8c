package scan

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// FailureReason records why a port was reported closed. It is diagnostic
// only: every reason other than ReasonNone means the port is closed.
type FailureReason uint8

const (
	ReasonNone FailureReason = iota
	ReasonTimeout
	ReasonRefused
	ReasonUnreachable
	ReasonDNS
	ReasonOther
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonRefused:
		return "refused"
	case ReasonUnreachable:
		return "unreachable"
	case ReasonDNS:
		return "dns"
	}
	return "other"
}

// DefaultTimeout replaces a non-positive timeout so that no probe can block
// indefinitely.
const DefaultTimeout = 2 * time.Second

func effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

// Probe connects to target:port and, if the connection succeeds, tries to
// capture a banner. It never returns an error: anything that prevents a
// connection yields a closed result. A timeout <= 0 means DefaultTimeout.
func Probe(target string, port int, timeout time.Duration) ProbeResult {
	return ProbeContext(context.Background(), target, port, timeout)
}

// ProbeContext is Probe with a context governing the dial.
func ProbeContext(ctx context.Context, target string, port int, timeout time.Duration) ProbeResult {

	result := ProbeResult{
		Port:    port,
		Service: DescribePort(port),
	}

	timeout = effectiveTimeout(timeout)
	dialer := net.Dialer{Timeout: timeout}

	startTime := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(target, strconv.Itoa(port)))
	result.Latency = time.Since(startTime)
	if err != nil {
		result.Reason = classifyDialError(err)
		return result
	}
	defer conn.Close()

	result.Open = true
	result.Banner = grabBanner(conn, timeout)
	return result
}

func classifyDialError(err error) FailureReason {

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonRefused
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return ReasonUnreachable
	}

	return ReasonOther
}
