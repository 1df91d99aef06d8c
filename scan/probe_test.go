package scan

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCapturesHTTPBanner(t *testing.T) {
	port := startListener(t, httpResponder)

	result := Probe("127.0.0.1", port, time.Second)

	assert.True(t, result.Open)
	assert.Equal(t, port, result.Port)
	assert.Equal(t, ReasonNone, result.Reason)
	require.True(t, result.HasBanner())
	assert.Contains(t, result.Banner, "HTTP/1.1 200 OK")
}

func TestProbeCapturesGreetingBanner(t *testing.T) {
	port := startListener(t, greeter("SSH-2.0-OpenSSH_9.6\r\n"))

	result := Probe("127.0.0.1", port, time.Second)

	assert.True(t, result.Open)
	assert.Equal(t, "SSH-2.0-OpenSSH_9.6\r\n", result.Banner)
}

func TestProbeSilentServiceIsOpenWithoutBanner(t *testing.T) {
	port := startListener(t, silent)

	start := time.Now()
	result := Probe("127.0.0.1", port, 200*time.Millisecond)

	assert.True(t, result.Open)
	assert.False(t, result.HasBanner())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProbeClosedPort(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result := Probe("127.0.0.1", port, time.Second)
		assert.False(t, result.Open)
		assert.False(t, result.HasBanner())
		assert.Equal(t, ReasonRefused, result.Reason)
	}
}

func TestProbeUnresolvableHost(t *testing.T) {
	result := Probe("portgrab.invalid", 80, 2*time.Second)

	assert.False(t, result.Open)
	assert.False(t, result.HasBanner())
	assert.NotEqual(t, ReasonNone, result.Reason)
}

func TestProbeHonoursTinyTimeout(t *testing.T) {
	port := startListener(t, silent)

	start := time.Now()
	result := Probe("127.0.0.1", port, time.Millisecond)

	assert.Less(t, time.Since(start), time.Second)
	if !result.Open {
		assert.False(t, result.HasBanner())
	}
}

func TestProbeContextCancelled(t *testing.T) {
	port := startListener(t, silent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ProbeContext(ctx, "127.0.0.1", port, time.Second)
	assert.False(t, result.Open)
	assert.False(t, result.HasBanner())
}

func TestProbeServiceName(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	result := Probe("127.0.0.1", port, 100*time.Millisecond)
	assert.Equal(t, DescribePort(port), result.Service)

	assert.Equal(t, "http", DescribePort(80))
	assert.Equal(t, "ssh", DescribePort(22))
	assert.Equal(t, "unknown", DescribePort(64999))
}

func TestClassifyDialError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureReason
	}{
		{"dns", &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "x.invalid", IsNotFound: true}}, ReasonDNS},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, ReasonRefused},
		{"host unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)}, ReasonUnreachable},
		{"network unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, ReasonUnreachable},
		{"deadline", context.DeadlineExceeded, ReasonTimeout},
		{"other", errors.New("boom"), ReasonOther},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, classifyDialError(test.err))
		})
	}
}

func TestFailureReasonString(t *testing.T) {
	assert.Equal(t, "timeout", ReasonTimeout.String())
	assert.Equal(t, "refused", ReasonRefused.String())
	assert.Equal(t, "other", FailureReason(99).String())
}

func TestNonPositiveTimeoutUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultTimeout, effectiveTimeout(0))
	assert.Equal(t, DefaultTimeout, effectiveTimeout(-time.Second))
	assert.Equal(t, 300*time.Millisecond, effectiveTimeout(300*time.Millisecond))

	assert.Equal(t, DefaultTimeout, NewConnectScanner(0, 1).timeout)
	assert.Equal(t, DefaultTimeout, NewConnectScanner(-time.Second, 1).timeout)
}

func TestProbeZeroTimeoutDoesNotHang(t *testing.T) {
	port := startListener(t, silent)

	done := make(chan ProbeResult, 1)
	go func() {
		done <- Probe("127.0.0.1", port, 0)
	}()

	select {
	case result := <-done:
		assert.True(t, result.Open)
		assert.False(t, result.HasBanner())
	case <-time.After(DefaultTimeout + 3*time.Second):
		t.Fatal("zero timeout left the banner read unbounded")
	}
}
