package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/chomp/internal/cliconfig"
	"github.com/calvinalkan/chomp/internal/fsys"
	"github.com/calvinalkan/chomp/internal/reduce"
)

// Run is chomp's entry point. args[0] is the program name, exactly
// like os.Args. Returns the process exit code: 0 on success, 1 on a
// fatal error, 130 on an interrupted graceful shutdown (mirrors the
// teacher's signal handling in its own Run).
func Run(_ io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	flags := flag.NewFlagSet("chomp", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flagHelp := flags.BoolP("help", "h", false, "Show help")
	flagDirectory := flags.StringP("directory", "d", ".", "Root `directory` to reduce")
	flagYes := flags.BoolP("yes", "y", false, "Skip the confirmation prompt")
	flagStrategies := flags.StringSlice("strategies", nil, "Comma-separated strategy order (overrides config)")
	flagRandomAttempts := flags.Int("random-attempts", 0, "Attempt cap for the random strategies (0 = use config)")
	flagWindowSize := flags.Int("window-size", 0, "Sliding-window width (0 = use config)")
	flagSeed := flags.Uint64("seed", 0, "Override both random strategies' LCG seed (0 = use config defaults)")
	flagConfig := flags.String("config", "", "Explicit config `file` path")

	if err := flags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if *flagHelp {
		printUsage(out, flags)

		return 0
	}

	command := strings.Join(flags.Args(), " ")
	if command == "" {
		fprintln(errOut, "error:", errCommandRequired)
		printUsage(errOut, flags)

		return 1
	}

	workDir, err := filepath.Abs(*flagDirectory)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if info, statErr := os.Stat(workDir); statErr != nil || !info.IsDir() {
		fprintln(errOut, "error:", errDirectoryMissing, "-", workDir)

		return 1
	}

	cfg, _, err := cliconfig.Load(cliconfig.LoadInput{WorkDir: workDir, ConfigPath: *flagConfig, Env: env})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(*flagStrategies) > 0 {
		cfg.Strategies = *flagStrategies
	}

	if *flagRandomAttempts > 0 {
		cfg.RandomAttempts = *flagRandomAttempts
	}

	if *flagWindowSize > 0 {
		cfg.WindowSize = *flagWindowSize
	}

	if *flagSeed > 0 {
		cfg.RandomLinesSeed = *flagSeed
		cfg.RandomRangesSeed = *flagSeed
	}

	cmdIO := NewIO(out, errOut)

	if !*flagYes {
		ok, err := confirmPrompt(fmt.Sprintf("This will destructively edit files under %s. Continue? [y/N] ", workDir))
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}

		if !ok {
			fprintln(errOut, errAborted.Error())

			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- runChomp(ctx, cmdIO, workDir, command, cfg)
	}()

	select {
	case exitCode := <-done:
		if exitCode != 0 {
			return exitCode
		}

		return cmdIO.Finish()
	case <-sigCh:
		fprintln(errOut, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case <-done:
		fprintln(errOut, "graceful shutdown ok (130)")

		return 130
	case <-time.After(5 * time.Second):
		fprintln(errOut, "graceful shutdown timed out, forced exit (130)")

		return 130
	case <-sigCh:
		fprintln(errOut, "graceful shutdown interrupted, forced exit (130)")

		return 130
	}
}

// runChomp runs the full reduction against workDir and reports the
// outcome through cmdIO. Returns a non-zero exit code only on fatal
// errors (I/O setup failures, oracle launch failures, cancellation);
// a reduction that simply finds nothing to chomp still exits 0.
func runChomp(ctx context.Context, cmdIO *IO, workDir, command string, cfg cliconfig.Config) int {
	paths, err := reduce.Walk(workDir, reduce.WalkOptions{
		Extensions:  cfg.Extensions,
		IgnoreGlobs: cfg.IgnoreGlobs,
	})
	if err != nil {
		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	if len(paths) == 0 {
		cmdIO.ErrPrintln("error:", errNoFilesFound)

		return 1
	}

	fs := fsys.NewReal()

	files := reduce.NewFileStateSet()

	for _, rel := range paths {
		abs := filepath.Join(workDir, rel)
		if err := files.AddFile(fs, abs); err != nil {
			cmdIO.ErrPrintln("error:", err)

			return 1
		}
	}

	initialLines := files.TotalLines()

	oracle := reduce.NewOracleInDir(command, workDir)
	engine := reduce.NewEngine(fs, files, oracle)

	if _, err := engine.EstablishBaseline(ctx); err != nil {
		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	strategies, err := buildStrategies(cfg)
	if err != nil {
		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	driver, err := reduce.NewDriver(engine, strategies)
	if err != nil {
		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	driver.OnRound(func(r reduce.RoundReport) {
		cmdIO.Printf("round %d: %d chomped\n", r.Round, r.Successes)
	})

	start := time.Now()

	rounds, successes, err := driver.Run(ctx)
	if err != nil {
		cmdIO.ErrPrintln("error:", err)

		if ctx.Err() != nil {
			return 130
		}

		return 1
	}

	elapsed := time.Since(start)

	finalLines := files.NonBlankLines()

	printSummary(cmdIO, summary{
		initialLines: initialLines,
		finalLines:   finalLines,
		rounds:       rounds,
		successes:    successes,
		tried:        engine.ChompsTried(),
		elapsed:      elapsed,
	})

	for _, d := range reduce.DiffReport(files) {
		if d.Removed > 0 {
			cmdIO.Println(d.Summary())
		}
	}

	return 0
}

func buildStrategies(cfg cliconfig.Config) ([]reduce.Strategy, error) {
	attempts := cfg.RandomAttempts
	if attempts <= 0 {
		attempts = cliconfig.Default().RandomAttempts
	}

	window := cfg.WindowSize
	if window <= 0 {
		window = cliconfig.Default().WindowSize
	}

	strategies := make([]reduce.Strategy, 0, len(cfg.Strategies))

	for _, name := range cfg.Strategies {
		switch strings.ToLower(name) {
		case "bisection":
			strategies = append(strategies, reduce.BisectionStrategy{})
		case "random_lines":
			strategies = append(strategies, reduce.NewRandomLinesStrategyWithSeed(attempts, cfg.RandomLinesSeed))
		case "random_ranges":
			strategies = append(strategies, reduce.NewRandomRangesStrategyWithSeed(attempts, cfg.RandomRangesSeed))
		case "sliding_window":
			strategies = append(strategies, reduce.NewSlidingWindow(window))
		case "up_to_n_lines":
			strategies = append(strategies, reduce.NewUpToN(window))
		default:
			return nil, fmt.Errorf("unknown strategy: %s", name)
		}
	}

	if len(strategies) == 0 {
		return nil, errors.New("no strategies configured")
	}

	return strategies, nil
}

type summary struct {
	initialLines int
	finalLines   int
	rounds       int
	successes    int
	tried        int
	elapsed      time.Duration
}

func printSummary(cmdIO *IO, s summary) {
	percent := 0.0
	if s.initialLines > 0 {
		percent = 100 * float64(s.initialLines-s.finalLines) / float64(s.initialLines)
	}

	cmdIO.Println()
	cmdIO.Printf("lines: %d -> %d (%.1f%% removed)\n", s.initialLines, s.finalLines, percent)
	cmdIO.Printf("chomps: %d kept / %d tried, over %d round(s)\n", s.successes, s.tried, s.rounds)
	cmdIO.Printf("elapsed: %s\n", s.elapsed.Round(time.Millisecond))
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fprintln(w, "chomp - oracle-driven source minimizer")
	fprintln(w)
	fprintln(w, "Usage: chomp [flags] <oracle command>")
	fprintln(w)
	fprintln(w, "Flags:")

	var buf strings.Builder

	flags.SetOutput(&buf)
	flags.PrintDefaults()
	flags.SetOutput(io.Discard)

	fprintln(w, buf.String())
}
