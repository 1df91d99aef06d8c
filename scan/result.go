package scan

import (
	"fmt"
	"time"
)

// ProbeResult is the outcome of probing a single port.
type ProbeResult struct {
	Port    int
	Open    bool
	Service string
	// Banner is empty when nothing was captured. Closed ports never carry one.
	Banner  string
	Reason  FailureReason
	Latency time.Duration
}

func (r ProbeResult) HasBanner() bool {
	return r.Banner != ""
}

func (r ProbeResult) String() string {
	if r.Open {
		return fmt.Sprintf("Port %d (%s) - OPEN", r.Port, r.Service)
	}
	return fmt.Sprintf("Port %d (%s) - CLOSED (%s)", r.Port, r.Service, r.Reason)
}
