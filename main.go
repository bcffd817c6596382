package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"vsplit/config"
	"vsplit/internal/timeutil"
	"vsplit/mediaproc"
	"vsplit/models"
	"vsplit/splitter"
)

// progressScale is the resolution of the rendered progress bar.
const progressScale = 1000

func main() {
	// Step 1: Load configuration (CLI flags > config file > defaults)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Verbose)

	// Step 2: Build the immutable job from validated input
	job, err := models.NewSplitJob(cfg.Input, cfg.MaxSegmentBytes(), cfg.PerSegmentTimeout())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	proc := mediaproc.NewProcessor(cfg.FFmpegPath, cfg.FFprobePath, mediaproc.EncodeSettings{
		VideoCodec:   cfg.Encode.VideoCodec,
		CRF:          cfg.Encode.CRF,
		Preset:       cfg.Encode.Preset,
		AudioCodec:   cfg.Encode.AudioCodec,
		AudioBitrate: cfg.Encode.AudioBitrate,
	})

	// Step 3: Handle dry-run mode
	if cfg.DryRun {
		printDryRun(proc, job)
		return
	}

	// Step 4: Set up context with cancellation for a clean stop between
	// segments (Ctrl+C, SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n⚠️  Interrupt received, stopping after the current segment...")
		cancel()
	}()

	// Step 5: Run the splitting loop
	if err := run(ctx, proc, job); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\n⚠️  Splitting interrupted; completed segments were kept")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ VIDEO PROCESSING ERROR:\n\n%v\n", err)
		os.Exit(1)
	}
}

// run executes the complete splitting workflow
func run(ctx context.Context, proc *mediaproc.Processor, job *models.SplitJob) error {
	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    VSPLIT - VIDEO SPLITTER                     ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")
	fmt.Printf("Input:       %s\n", job.SourcePath)
	fmt.Printf("Max size:    %s per segment\n", timeutil.FormatBytes(job.MaxSegmentBytes))
	fmt.Printf("Timeout:     %s per segment\n", job.PerSegmentTimeout)
	fmt.Printf("Start time:  %s\n", time.Now().Format("15:04:05"))
	fmt.Println()

	// Pre-run summary of the source file
	info, err := proc.FileInfo(ctx, job.SourcePath)
	if err != nil {
		return err
	}
	fmt.Printf("  Duration:  %s\n", timeutil.FormatClock(info.DurationSeconds))
	fmt.Printf("  Size:      %s (%.0f kbps)\n", timeutil.FormatBytes(info.SizeBytes), info.BitrateKbps)
	fmt.Println()

	reporter := splitter.NewReporter(0)
	controller := splitter.NewController(proc, reporter)

	// The worker runs independently of event rendering and never blocks
	// on it; this goroutine owns the reporter's lifecycle.
	type runResult struct {
		outcome *splitter.Outcome
		err     error
	}
	resCh := make(chan runResult, 1)
	go func() {
		outcome, err := controller.Run(ctx, job)
		reporter.Close()
		resCh <- runResult{outcome, err}
	}()

	renderEvents(reporter.Events())

	res := <-resCh
	if res.err != nil {
		return res.err
	}

	printSummary(res.outcome)
	return nil
}

// renderEvents drains the controller's event stream until it closes,
// rendering a progress bar on a terminal and plain log lines otherwise.
func renderEvents(events <-chan splitter.Event) {
	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(progressScale,
			progressbar.OptionSetDescription("splitting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}

	for ev := range events {
		switch ev.Kind {
		case splitter.EventInfo:
			if bar != nil {
				bar.Describe(ev.Message)
			} else {
				slog.Info(ev.Message)
			}
		case splitter.EventProgress:
			if bar != nil {
				_ = bar.Set(int(ev.Fraction * progressScale))
			} else {
				slog.Info("progress", "percent", int(ev.Fraction*100))
			}
		case splitter.EventIndeterminateStart, splitter.EventIndeterminateStop:
			// The bar keeps its last position while a segment encodes;
			// Describe updates are the liveness signal.
		case splitter.EventCompleted:
			if bar != nil {
				_ = bar.Finish()
			}
		case splitter.EventFailed:
			if bar != nil {
				_ = bar.Clear()
			}
		}
	}
}

// printSummary prints the final report after a successful run
func printSummary(outcome *splitter.Outcome) {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                 ✅ SPLITTING COMPLETE!")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Segments:   %d\n", outcome.SegmentsCreated)
	if outcome.BatchPrefix != "" {
		fmt.Printf("  Batch:      %s\n", outcome.BatchPrefix)
	}
	fmt.Printf("  Directory:  %s\n", outcome.OutputDir)
	fmt.Printf("  Run ID:     %s\n", outcome.RunID)
	fmt.Printf("  Total time: %.2fs\n", outcome.Elapsed.Seconds())
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// printDryRun shows the command the first segment would run, without
// touching the filesystem beyond the batch-prefix scan.
func printDryRun(proc *mediaproc.Processor, job *models.SplitJob) {
	absSource, err := filepath.Abs(job.SourcePath)
	if err != nil {
		absSource = job.SourcePath
	}
	dir := filepath.Dir(absSource)
	ext := filepath.Ext(absSource)
	base := strings.TrimSuffix(filepath.Base(absSource), ext)

	prefix := splitter.ResolveBatchPrefix(dir, base, ext)
	outputPath := filepath.Join(dir, splitter.SegmentFileName(base, prefix, 1, ext))

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                      DRY RUN MODE")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("First segment command:\n\n  %s\n\n", proc.DryRunCommand(splitter.EncodeRequest{
		SourcePath: job.SourcePath,
		MaxBytes:   job.MaxSegmentBytes,
		OutputPath: outputPath,
		Timeout:    job.PerSegmentTimeout,
		Segment:    1,
	}))
	fmt.Println("✓ Configuration is valid. No encoding will be performed.")
}

// setupLogging installs the process-wide structured logger
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
