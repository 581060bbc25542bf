package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"rsc.io/diff"

	"svfmt/internal/config"
	"svfmt/internal/diag"
	"svfmt/internal/format"
	"svfmt/internal/observ"
	"svfmt/internal/source"
	"svfmt/internal/trace"
)

// Overrides replace individual config values, typically from flags.
type Overrides struct {
	IndentWidth  *int
	MaxLineWidth *int
	UseTabs      *bool
}

func (o Overrides) apply(opt format.Options) format.Options {
	if o.IndentWidth != nil {
		opt.IndentWidth = *o.IndentWidth
	}
	if o.MaxLineWidth != nil {
		opt.MaxLineWidth = *o.MaxLineWidth
	}
	if o.UseTabs != nil {
		opt.UseTabs = *o.UseTabs
	}
	return opt
}

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool // report changes only
	Diff           bool // like Check, plus a unified-style diff per changed file
	Stdout         bool // return formatted content instead of writing files
	Verify         bool // re-format the output and fail unless it is a fixed point
	Jobs           int  // 0 selects GOMAXPROCS
	MaxDiagnostics int
	Overrides      Overrides
	// Config applies to every file when set; otherwise each file uses the
	// nearest svfmt.toml above it.
	Config   *config.Config
	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path        string
	Language    string
	Changed     bool
	Cached      bool
	Err         error
	Formatted   []byte
	Diff        string
	Diagnostics []diag.Diagnostic
	Files       *source.FileSet // resolves Diagnostics spans
}

const defaultMaxDiagnostics = 256

// FormatPaths formats provided files or directories (recursively collecting
// files of every known language). Files are processed in parallel; results
// keep the sorted path order. A per-file failure lands in FormatResult.Err and
// leaves that file untouched; the returned error is reserved for failures
// that stop the whole run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfgs := newConfigCache(opts.Config)
	stop := opts.Timer.Begin("collect")
	files, err := collectSourceFiles(ctx, paths, cfgs)
	stop(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))

	stop = opts.Timer.Begin("format")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, opts, cfgs)
			return nil
		})
	}
	err = g.Wait()
	stop(fmt.Sprintf("jobs=%d", min(jobs, len(files))))
	if err != nil {
		return results, err
	}
	return results, nil
}

// FormatBytes formats src as if it were read from name (stdin, editors).
// The language follows name's extension; without one it is guessed from the
// content and defaults to SystemVerilog.
// Nothing is written; Formatted always holds the output unless Err is set.
func FormatBytes(ctx context.Context, name string, src []byte, opts FormatOptions) FormatResult {
	res := FormatResult{Path: name}
	lang, ok := LanguageFor(name)
	if !ok {
		lang = DetectLanguage(src)
	}
	res.Language = lang.Name

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	fset := source.NewFileSet()
	file := fset.Get(fset.AddBytes(name, src, source.FileVirtual))
	res.Files = fset

	formatted, diags, cached, err := formatSource(ctx, lang, file, opts.Overrides.apply(cfg.Format.Options()), opts, trace.CurrentSpan(ctx))
	res.Diagnostics = diags
	res.Cached = cached
	if err != nil {
		res.Err = err
		return res
	}
	out := file.Restore(formatted)
	res.Changed = !bytes.Equal(src, out)
	res.Formatted = out
	if opts.Diff && res.Changed {
		res.Diff = diff.Format(string(src), string(out))
	}
	return res
}

func formatFile(ctx context.Context, path string, opts FormatOptions, cfgs *configCache) (res FormatResult) {
	res.Path = path
	span := trace.BeginFile(trace.FromContext(ctx), path, trace.CurrentSpan(ctx))
	start := time.Now()
	defer func() {
		detail := "unchanged"
		status := StatusDone
		switch {
		case res.Err != nil:
			detail = "error"
			status = StatusError
		case res.Changed:
			detail = "changed"
		}
		span.End(detail)
		emit(opts.Progress, Event{File: path, Stage: StageFile, Status: status, Err: res.Err, Elapsed: time.Since(start), Changed: res.Changed})
	}()

	lang, ok := LanguageFor(path)
	if !ok {
		res.Err = fmt.Errorf("%s: unsupported file type", path)
		return res
	}
	res.Language = lang.Name

	cfg, err := cfgs.forFile(path)
	if err != nil {
		res.Err = err
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
		return res
	}

	// #nosec G304 -- path comes from the caller or a directory walk
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
		return res
	}

	fset := source.NewFileSet()
	file := fset.Get(fset.AddBytes(path, data, 0))
	res.Files = fset

	formatted, diags, cached, err := formatSource(ctx, lang, file, opts.Overrides.apply(cfg.Format.Options()), opts, span.ID())
	res.Diagnostics = diags
	res.Cached = cached
	if err != nil {
		res.Err = err
		return res
	}

	out := file.Restore(formatted)
	res.Changed = !bytes.Equal(data, out)

	switch {
	case opts.Diff:
		if res.Changed {
			res.Diff = diff.Format(string(data), string(out))
		}
	case opts.Check:
	case opts.Stdout:
		res.Formatted = out
	case res.Changed:
		res.Err = writeFormatted(path, out, opts)
	}
	return res
}

func writeFormatted(path string, out []byte, opts FormatOptions) error {
	start := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	err := os.WriteFile(path, out, mode.Perm())
	elapsed := time.Since(start)
	opts.Timer.Add("write", elapsed)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: elapsed})
	return nil
}

// formatSource parses and renders one normalised file, consulting the cache.
// The returned bytes are LF-only and carry no BOM.
func formatSource(ctx context.Context, lang Language, file *source.File, fopt format.Options, opts FormatOptions, parent uint64) ([]byte, []diag.Diagnostic, bool, error) {
	path := file.Path
	if err := fopt.Validate(); err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
		return nil, nil, false, err
	}
	fopt.Table = lang.Table
	fopt.Tracer = trace.FromContext(ctx)
	fopt.TraceParent = parent

	cache := opts.Cache
	key, ok := cacheKey(lang, fopt, file.Hash)
	if !ok {
		cache = nil
	}
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit && payload.Language == lang.Name {
		emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusDone})
		return payload.Formatted, diag.Retarget(payload.Diagnostics, file.ID), true, nil
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}

	start := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	root, bag, err := lang.Parse(ctx, file.ID, file.Content, maxDiag)
	elapsed := time.Since(start)
	opts.Timer.Add("parse", elapsed)
	var diags []diag.Diagnostic
	if bag != nil {
		bag.Sort()
		diags = bag.Items()
	}
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: elapsed})
		return nil, diags, false, err
	}
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: elapsed})

	start = time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusWorking})
	out, err := format.Render(root, file.Content, fopt)
	if err == nil && opts.Verify {
		err = verifyFixedPoint(ctx, lang, file.ID, out, fopt, maxDiag)
	}
	elapsed = time.Since(start)
	opts.Timer.Add("render", elapsed)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusError, Err: err, Elapsed: elapsed})
		return nil, diags, false, err
	}
	emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusDone, Elapsed: elapsed})

	// кэш best-effort: ошибка записи не портит результат
	_ = cache.Put(key, &DiskPayload{Language: lang.Name, Formatted: out, Diagnostics: diags})
	return out, diags, false, nil
}

// verifyFixedPoint formats out once more and requires identical bytes.
func verifyFixedPoint(ctx context.Context, lang Language, file source.FileID, out []byte, fopt format.Options, maxDiag int) error {
	root, _, err := lang.Parse(ctx, file, out, maxDiag)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	again, err := format.Render(root, out, fopt)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !bytes.Equal(out, again) {
		at := firstDifference(out, again)
		return fmt.Errorf("verify: %w", &format.InvariantError{Offset: at, Msg: "output is not stable under reformatting"})
	}
	return nil
}

func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
