// Cogito: structured reasoning MCP server
//
// An MCP server that gives AI coding tools structured reasoning catalogs
// (mental models, design patterns, programming paradigms, debugging
// approaches), diagram generation, and a local feedback channel, with
// consent-gated, local-only usage telemetry.
//
// Usage:
//
//	cogito serve              # Start MCP server (stdio transport)
//	cogito telemetry status   # Inspect the local telemetry subsystem
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cogitohq/cogito/internal/analytics"
	"github.com/cogitohq/cogito/internal/logging"
	cogitoserver "github.com/cogitohq/cogito/internal/server"
	"github.com/cogitohq/cogito/internal/updater"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "telemetry":
		os.Exit(runTelemetry(os.Args[2:]))
	case "update":
		os.Exit(runUpdate(os.Args[2:]))
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("cogito v%s\n", cogitoserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runServe() error {
	logger, err := logging.FromEnv()
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	s, cleanup, err := cogitoserver.New(context.Background(), logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// A signal would normally kill the process without running deferred
	// cleanup, losing buffered telemetry events. Flush explicitly first.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cleanup()
		os.Exit(0)
	}()

	logger.Info("cogito server starting", "version", cogitoserver.Version)
	return server.ServeStdio(s)
}

func runUpdate(args []string) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	checkOnly := fs.Bool("check", false, "only report whether a newer release exists")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *checkOnly {
		res := updater.Check(cogitoserver.Version)
		switch {
		case res.LatestVersion == "":
			fmt.Fprintln(os.Stderr, "Could not reach GitHub to check for releases.")
			return 1
		case res.UpdateAvailable:
			fmt.Printf("cogito v%s is available (you have v%s).\n", res.LatestVersion, res.CurrentVersion)
			fmt.Printf("Release notes: %s\n", res.ReleaseURL)
			fmt.Println("Run: cogito update")
		default:
			fmt.Printf("cogito v%s is up to date.\n", res.CurrentVersion)
		}
		return 0
	}

	fmt.Println("Checking for the latest release...")
	if err := updater.SelfUpdate(cogitoserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println("Updated. Restart any running cogito server to pick up the new binary.")
	return 0
}

// --- telemetry subcommands ---

func runTelemetry(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cogito telemetry <enable|disable|status|export|clear>")
		return 2
	}

	logger, err := logging.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "enable":
		return telemetryEnable(rest, logger)
	case "disable":
		return telemetryDisable(rest, logger)
	case "status":
		return telemetryStatus(rest, logger)
	case "export":
		return telemetryExport(rest, logger)
	case "clear":
		return telemetryClear(rest, logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown telemetry command: %s\n", cmd)
		fmt.Fprintln(os.Stderr, "Usage: cogito telemetry <enable|disable|status|export|clear>")
		return 2
	}
}

// newRuntime builds the analytics runtime for one CLI operation. The
// caller must Close it.
func newRuntime(ctx context.Context, logger *slog.Logger) (*analytics.Runtime, error) {
	return analytics.NewRuntime(ctx, analytics.RuntimeOptions{Logger: logger})
}

func telemetryEnable(args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("telemetry enable", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.Close(ctx)

	rec, err := rt.GrantConsent(analytics.GrantOptions{EnableCollection: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Telemetry enabled (policy version %s).\n\n", rec.PolicyVersion)
	fmt.Println("What gets recorded, locally only:")
	fmt.Println("  - tool name, timestamp, success or failure, duration")
	fmt.Println("  - a random per-session id (no user or machine identifier)")
	fmt.Println("  - on failure, a coarse error category; never the message")
	fmt.Println()
	fmt.Println("Never recorded: tool arguments, tool output, file contents, paths.")
	fmt.Printf("Events are kept for %d days under %s and never leave this machine.\n",
		rt.Config().RetentionDays, rt.Config().StoragePath)
	fmt.Println("Disable at any time with: cogito telemetry disable")
	return 0
}

func telemetryDisable(args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("telemetry disable", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.Close(ctx)

	if _, err := rt.WithdrawConsent(analytics.WithdrawOptions{DisableCollection: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Println("Telemetry disabled. No further events will be recorded.")
	fmt.Println("Already stored events stay on disk; remove them with: cogito telemetry clear")
	return 0
}

func telemetryStatus(args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("telemetry status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.Close(ctx)

	st, err := rt.Status(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Println("Telemetry status")
	fmt.Println()
	fmt.Printf("  Collection enabled: %t\n", st.Enabled)
	fmt.Printf("  Consent:            %s\n", describeConsent(rt, st.ConsentState))
	fmt.Printf("  Policy version:     %s\n", st.PolicyVersion)
	fmt.Printf("  Retention:          %d days\n", st.RetentionDays)
	fmt.Printf("  Batch size:         %d events\n", st.BatchSize)
	fmt.Printf("  Flush interval:     %s\n", time.Duration(st.FlushIntervalMS)*time.Millisecond)
	fmt.Printf("  Storage path:       %s\n", st.StoragePath)
	fmt.Printf("  Scheduled cleanup:  %s\n", activeWord(st.ScheduleActive))
	fmt.Println()
	fmt.Printf("  Stored events:      %d in %d files (%s)\n",
		st.Storage.EventCount, st.Storage.FileCount, humanSize(st.Storage.TotalSizeBytes))
	if st.Storage.OldestDate != "" {
		fmt.Printf("  Partition range:    %s to %s\n", st.Storage.OldestDate, st.Storage.NewestDate)
	}
	if st.Retention.TotalRuns > 0 {
		fmt.Printf("  Retention sweeps:   %d (removed %d events in %d files)\n",
			st.Retention.TotalRuns, st.Retention.TotalEventsDeleted, st.Retention.TotalFilesDeleted)
	}
	return 0
}

func telemetryExport(args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("telemetry export", flag.ContinueOnError)
	days := fs.Int("days", 0, "trailing window in days (default 30)")
	raw := fs.Bool("raw", false, "include the individual event records")
	out := fs.String("out", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *days < 0 {
		fmt.Fprintln(os.Stderr, "Error: --days must not be negative")
		return 2
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.Close(ctx)

	opts := analytics.ExportOptions{IncludeRaw: *raw}
	if *days > 0 {
		opts.From = time.Now().UTC().AddDate(0, 0, -*days)
	}

	if *out != "" {
		if err := rt.Exporter().WriteFile(ctx, opts, *out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Exported telemetry summary to %s\n", *out)
		return 0
	}

	data, err := rt.Exporter().ExportJSON(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func telemetryClear(args []string, logger *slog.Logger) int {
	fs := flag.NewFlagSet("telemetry clear", flag.ContinueOnError)
	revokeConsent := fs.Bool("consent", false, "also remove the consent record")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*yes {
		fmt.Print("This permanently deletes all locally stored telemetry events")
		if *revokeConsent {
			fmt.Print(" and the consent record")
		}
		fmt.Print(". Continue? [y/N]: ")
		if !confirmed(os.Stdin) {
			fmt.Println("Aborted; nothing deleted.")
			return 0
		}
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.Close(ctx)

	report, err := rt.Deletion().DeleteAllData(ctx, analytics.DeleteOptions{
		Reason:        "user_request",
		RevokeConsent: *revokeConsent,
		ResetRuntime:  true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Deleted %d events in %d files.\n", report.EventsDeleted, report.FilesDeleted)
	if report.ConsentRevoked {
		fmt.Println("Consent record removed; cogito will treat telemetry as never asked.")
	}
	return 0
}

// --- helpers ---

// confirmed reads one line and accepts y or yes, case-insensitively.
func confirmed(r *os.File) bool {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}

// describeConsent augments the consent state with its timestamp when the
// record carries one.
func describeConsent(rt *analytics.Runtime, state string) string {
	rec, ok := rt.Gate().Record()
	if !ok {
		return state
	}
	switch state {
	case analytics.ConsentGranted:
		if rec.ConsentedAt != nil {
			return fmt.Sprintf("granted %s", rec.ConsentedAt.UTC().Format("2006-01-02"))
		}
	case analytics.ConsentWithdrawn:
		if rec.WithdrawnAt != nil {
			return fmt.Sprintf("withdrawn %s", rec.WithdrawnAt.UTC().Format("2006-01-02"))
		}
	case analytics.ConsentStale:
		return fmt.Sprintf("granted for policy %s, current is %s; re-run: cogito telemetry enable",
			rec.PolicyVersion, analytics.PolicyVersion)
	}
	return state
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cogito v%s: structured reasoning MCP server

Usage:
  cogito serve                Start the MCP server (stdio transport)
  cogito telemetry enable     Turn on local usage telemetry (asks for consent once)
  cogito telemetry disable    Stop recording events
  cogito telemetry status     Show consent, configuration, and stored data
  cogito telemetry export     Print or write a JSON usage summary
                                [--days N] [--raw] [--out FILE]
  cogito telemetry clear      Delete all stored events
                                [--consent] [--yes]
  cogito update               Update to the latest release
                                [--check]
  cogito version              Print the version
  cogito help                 Show this help

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "cogito": {
        "command": "cogito",
        "args": ["serve"]
      }
    }
  }

Telemetry never leaves this machine and is off until you enable it.
`, cogitoserver.Version)
}
