package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/liamg/portgrab/output"
	"github.com/liamg/portgrab/scan"
	"github.com/liamg/portgrab/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var versionRequested bool

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is ./portgrab.yaml)")
	flags.BoolVarP(&versionRequested, "version", "", false, "Output version information and exit")
	flags.StringP("ports", "p", "common", "Ports to scan: common, a single port, or a comma separated list with ranges e.g. 22,80,443,8080-8090")
	flags.Float64P("timeout", "t", 2.0, "Timeout per port in seconds")
	flags.IntP("threads", "w", 200, "Maximum number of ports probed at once")
	flags.StringP("output", "o", "", "Write the report to this file")
	flags.Bool("table", false, "Also print open ports as a table")
	flags.Bool("reasons", false, "Log why each closed port failed to connect")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	config = newConfig(flags)
}

var rootCmd = &cobra.Command{
	Use:           "portgrab [target]",
	Short:         "portgrab is a TCP port scanner with banner grabbing",
	Long:          `A TCP connect scanner that finds open ports on a host and captures whatever banner each service sends back.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		out := cmd.OutOrStdout()

		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Fprintf(out, "portgrab %s\n", v)
			return nil
		}

		if configErr != nil {
			return configErr
		}

		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		if cfg.Verbose {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) == 0 {
			return fmt.Errorf("please specify a target")
		}
		target := args[0]

		ports, err := getPorts(cfg.Ports)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Scanning %d ports on %s...\n", len(ports), target)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scanner := scan.NewConnectScanner(cfg.Timeout, cfg.Threads)
		report, completed := runScan(ctx, out, scanner, target, ports, cfg.Reasons)
		if !completed {
			return nil
		}

		fmt.Fprintf(out, "\n%s\n", report.String())

		if cfg.Table && len(report.Open) > 0 {
			fmt.Fprintln(out)
			if err := report.Table(out); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}
		}

		if cfg.Output != "" {
			if err := output.WriteAtomic(cfg.Output, []byte(report.String())); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Fprintf(out, "\nReport saved to %s\n", cfg.Output)
		}

		return nil
	},
}

// runScan scans target and streams open ports to out as they are found. If
// ctx is cancelled first it prints an interrupt notice and returns false;
// nothing more is written to out after that, even though probes still in
// flight run on to their own timeout.
func runScan(ctx context.Context, out io.Writer, scanner scan.Scanner, target string, ports []int, reasons bool) (scan.Report, bool) {

	var mu sync.Mutex
	interrupted := false

	scanner.OnResult(func(result scan.ProbeResult) {
		if !result.Open {
			if reasons {
				log.WithField("port", result.Port).Infof("Closed: %s", result.Reason)
			}
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if !interrupted {
			printResult(out, result)
		}
	})

	reportChan := make(chan scan.Report, 1)
	go func() {
		reportChan <- scanner.Scan(target, ports)
	}()

	select {
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		interrupted = true
		fmt.Fprintln(out, "\nScan interrupted by user.")
		return scan.Report{}, false
	case report := <-reportChan:
		return report, true
	}
}

func printResult(w io.Writer, result scan.ProbeResult) {
	fmt.Fprintln(w, result.String())
	if result.HasBanner() {
		fmt.Fprintf(w, "  Banner: %s\n", strings.TrimSpace(result.Banner))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
