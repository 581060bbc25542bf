package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svfmt/internal/config"
	"svfmt/internal/diagfmt"
	"svfmt/internal/driver"
	"svfmt/internal/observ"
	"svfmt/internal/trace"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format SystemVerilog and C source files",
	Long: `Format rewrites files in place. Directories are walked recursively for
known extensions; files excluded by svfmt.toml are skipped. With no path, or
with "-", source is read from stdin and written to stdout.`,
	RunE: runFmt,
}

var errChangesRequired = errors.New("fmt: formatting changes required")

func init() {
	fmtCmd.Flags().Bool("check", false, "list files whose formatting differs; do not write")
	fmtCmd.Flags().Bool("diff", false, "print a diff for files whose formatting differs; do not write")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().String("config", "", "use this svfmt.toml for every file instead of searching")
	fmtCmd.Flags().String("stdin-filename", "<stdin>", "name (and language) for source read from stdin")
	fmtCmd.Flags().Int("indent", 0, "indent width (overrides config)")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs (overrides config)")
	fmtCmd.Flags().Int("max-width", 0, "max line width, 0 disables wrapping (overrides config)")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fmtCmd.Flags().Bool("no-cache", false, "do not read or write the formatting cache")
	fmtCmd.Flags().Bool("verify", false, "re-format every result and fail unless it is stable")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type fmtFlags struct {
	check, diff, stdout, verify, noCache, quiet, timings bool
	color                                                bool // diagnostics on stderr
	outputFormat, configPath, stdinName, ui              string
	jobs, maxDiagnostics                                 int
	overrides                                            driver.Overrides
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	if f.check, err = flags.GetBool("check"); err != nil {
		return f, err
	}
	if f.diff, err = flags.GetBool("diff"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.verify, err = flags.GetBool("verify"); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.outputFormat, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.configPath, err = flags.GetString("config"); err != nil {
		return f, err
	}
	if f.stdinName, err = flags.GetString("stdin-filename"); err != nil {
		return f, err
	}
	if f.ui, err = flags.GetString("ui"); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, err
	}

	if flags.Changed("indent") {
		v, getErr := flags.GetInt("indent")
		if getErr != nil {
			return f, getErr
		}
		f.overrides.IndentWidth = &v
	}
	if flags.Changed("max-width") {
		v, getErr := flags.GetInt("max-width")
		if getErr != nil {
			return f, getErr
		}
		f.overrides.MaxLineWidth = &v
	}
	if flags.Changed("tabs") {
		v, getErr := flags.GetBool("tabs")
		if getErr != nil {
			return f, getErr
		}
		f.overrides.UseTabs = &v
	}

	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	colorFlag, err := root.GetString("color")
	if err != nil {
		return f, err
	}
	colorMode, err := parseSwitch("color", colorFlag)
	if err != nil {
		return f, err
	}
	f.color = colorMode.enabledFor(os.Stderr)

	switch {
	case f.stdout && (f.check || f.diff):
		return f, fmt.Errorf("fmt: --stdout cannot be used with --check or --diff")
	case f.stdout && f.outputFormat != "text":
		return f, fmt.Errorf("fmt: --stdout is only supported with text output")
	case f.outputFormat != "text" && f.outputFormat != "json":
		return f, fmt.Errorf("fmt: unsupported output format %q", f.outputFormat)
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	uiMode, err := parseSwitch("ui", flags.ui)
	if err != nil {
		return err
	}

	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { tr.close(err != nil && !errors.Is(err, errChangesRequired)) }()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "fmt", 0)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	var timer *observ.Timer
	if flags.timings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(os.Stderr, timer.Summary()) }()
	}

	opts := driver.FormatOptions{
		Check:          flags.check,
		Diff:           flags.diff,
		Stdout:         flags.stdout,
		Verify:         flags.verify,
		Jobs:           flags.jobs,
		MaxDiagnostics: flags.maxDiagnostics,
		Overrides:      flags.overrides,
		Timer:          timer,
	}
	if flags.configPath != "" {
		cfg, loadErr := config.Load(flags.configPath)
		if loadErr != nil {
			return loadErr
		}
		opts.Config = &cfg
	}
	if !flags.noCache {
		cache, cacheErr := driver.OpenDiskCache("svfmt")
		if cacheErr != nil {
			if !flags.quiet {
				fmt.Fprintf(os.Stderr, "fmt: cache disabled: %v\n", cacheErr)
			}
		} else {
			opts.Cache = cache
		}
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return runFmtStdin(ctx, flags, opts)
	}

	var results []driver.FormatResult
	if flags.outputFormat == "text" && !flags.stdout && !flags.quiet && uiMode.enabledFor(os.Stdout) {
		results, err = runFormatWithUI(ctx, "svfmt", args, opts)
	} else {
		results, err = driver.FormatPaths(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	if flags.outputFormat == "json" {
		if err := renderFmtJSON(os.Stdout, results, flags); err != nil {
			return err
		}
	} else {
		renderFmtText(os.Stdout, os.Stderr, results, flags)
	}
	return fmtOutcome(results, flags)
}

func runFmtStdin(ctx context.Context, flags fmtFlags, opts driver.FormatOptions) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("fmt: failed to read stdin: %w", err)
	}
	if opts.Config == nil {
		cfg, loadErr := config.LoadFor(".")
		if loadErr != nil {
			return loadErr
		}
		opts.Config = &cfg
	}
	res := driver.FormatBytes(ctx, flags.stdinName, src, opts)
	results := []driver.FormatResult{res}

	switch {
	case flags.outputFormat == "json":
		if err := renderFmtJSON(os.Stdout, results, flags); err != nil {
			return err
		}
	case flags.check || flags.diff:
		renderFmtText(os.Stdout, os.Stderr, results, flags)
	default:
		printDiagnostics(os.Stderr, res, flags)
		if res.Err != nil {
			// исходник уходит на stdout без изменений, чтобы редактор не потерял текст
			_, _ = os.Stdout.Write(src)
			return fmt.Errorf("fmt: %s: %w", res.Path, res.Err)
		}
		_, _ = os.Stdout.Write(res.Formatted)
		return nil
	}
	return fmtOutcome(results, flags)
}

func fmtOutcome(results []driver.FormatResult, flags fmtFlags) error {
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}
	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if (flags.check || flags.diff) && hasChanges {
		return errChangesRequired
	}
	return nil
}

func printDiagnostics(w io.Writer, res driver.FormatResult, flags fmtFlags) {
	if flags.quiet || len(res.Diagnostics) == 0 {
		return
	}
	diagfmt.Pretty(w, res.Diagnostics, res.Files, diagfmt.PrettyOpts{
		Color:     flags.color,
		Context:   1,
		Paths:     diagfmt.PathStyle{Mode: diagfmt.PathRelative},
		ShowNotes: true,
	})
}

func renderFmtText(stdout, stderr io.Writer, results []driver.FormatResult, flags fmtFlags) {
	errLabel := color.New(color.FgRed, color.Bold).Sprint("error")
	for _, res := range results {
		printDiagnostics(stderr, res, flags)
		if res.Err != nil {
			fmt.Fprintf(stderr, "fmt: %s: %s: %v\n", errLabel, res.Path, res.Err)
			continue
		}
		if flags.stdout {
			_, _ = stdout.Write(res.Formatted)
			continue
		}
		if !res.Changed {
			continue
		}
		switch {
		case flags.diff:
			fmt.Fprintf(stdout, "diff %s\n%s", res.Path, res.Diff)
		case flags.check:
			if !flags.quiet {
				fmt.Fprintln(stdout, res.Path)
			}
		default:
			if !flags.quiet {
				fmt.Fprintf(stdout, "%s %s\n", color.GreenString("reformatted"), res.Path)
			}
		}
	}
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, flags fmtFlags) error {
	type jsonResult struct {
		Path        string               `json:"path"`
		Language    string               `json:"language,omitempty"`
		Changed     bool                 `json:"changed"`
		Cached      bool                 `json:"cached,omitempty"`
		Error       string               `json:"error,omitempty"`
		Diff        string               `json:"diff,omitempty"`
		Diagnostics []diagfmt.Diagnostic `json:"diagnostics,omitempty"`
		CheckRun    bool                 `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:     res.Path,
			Language: res.Language,
			Changed:  res.Changed,
			Cached:   res.Cached,
			Diff:     res.Diff,
			CheckRun: flags.check || flags.diff,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		jr.Diagnostics = diagfmt.Build(res.Diagnostics, res.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
