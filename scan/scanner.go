package scan

import "time"

type Scanner interface {
	Scan(target string, ports []int) Report
	OnResult(fn func(ProbeResult))
}

// Scan probes every port on target with at most maxConcurrency probes in
// flight and returns the aggregated report. A timeout <= 0 means
// DefaultTimeout.
func Scan(target string, ports []int, timeout time.Duration, maxConcurrency int) Report {
	return NewConnectScanner(timeout, maxConcurrency).Scan(target, ports)
}
