package scan

import (
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type probeFunc func(target string, port int, timeout time.Duration) ProbeResult

type portJob struct {
	target string
	port   int
}

// ConnectScanner runs full TCP connect probes across a bounded pool of
// worker routines.
type ConnectScanner struct {
	timeout     time.Duration
	maxRoutines int
	probe       probeFunc
	onResult    func(ProbeResult)
}

var _ Scanner = (*ConnectScanner)(nil)

// NewConnectScanner creates a scanner running at most paralellism probes at
// once. Values below 1 mean 1; a timeout <= 0 means DefaultTimeout.
func NewConnectScanner(timeout time.Duration, paralellism int) *ConnectScanner {
	if paralellism < 1 {
		paralellism = 1
	}
	return &ConnectScanner{
		timeout:     effectiveTimeout(timeout),
		maxRoutines: paralellism,
		probe:       Probe,
	}
}

// OnResult registers fn to be called with every probe result as it
// completes, open or closed. Calls are never concurrent with each other.
func (s *ConnectScanner) OnResult(fn func(ProbeResult)) {
	s.onResult = fn
}

// Scan probes each entry of ports exactly once and blocks until all probes
// have finished. Duplicate ports are probed and reported independently.
func (s *ConnectScanner) Scan(target string, ports []int) Report {

	report := Report{
		Target:       target,
		Open:         []ProbeResult{},
		TotalScanned: len(ports),
	}

	startTime := time.Now()

	if len(ports) == 0 {
		return report
	}

	routines := s.maxRoutines
	if routines > len(ports) {
		routines = len(ports)
	}

	jobChan := make(chan portJob)
	resultChan := make(chan ProbeResult, routines)
	doneChan := make(chan struct{})

	// sole writer of report.Open until doneChan is closed
	go func() {
		defer close(doneChan)
		for result := range resultChan {
			if s.onResult != nil {
				s.onResult(result)
			}
			if !result.Open {
				continue
			}
			log.Debugf("Port %d (%s) is open", result.Port, result.Service)
			report.Open = append(report.Open, result)
		}
	}()

	wg := &sync.WaitGroup{}
	for i := 0; i < routines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- s.probe(job.target, job.port, s.timeout)
			}
		}()
	}

	log.Debugf("Dispatching %d ports to %d workers...", len(ports), routines)
	for _, port := range ports {
		jobChan <- portJob{target: target, port: port}
	}
	close(jobChan)

	wg.Wait()
	close(resultChan)
	<-doneChan

	report.Elapsed = time.Since(startTime)

	sort.SliceStable(report.Open, func(i, j int) bool {
		return report.Open[i].Port < report.Open[j].Port
	})

	return report
}
