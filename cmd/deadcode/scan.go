package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dusk-indust/deadcode/internal/analyzer"
	"github.com/dusk-indust/deadcode/internal/classify"
	"github.com/dusk-indust/deadcode/internal/config"
	"github.com/dusk-indust/deadcode/internal/export"
	"github.com/dusk-indust/deadcode/internal/resultexport"
	"github.com/dusk-indust/deadcode/internal/store"
)

func scanCmd() *cobra.Command {
	var (
		exclude    []string
		workers    int
		jsonOut    bool
		diagramOut string
		verbose    bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project for dead source files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolving project root: %w", err)
			}
			root = abs

			// Viper layers explicit flags over deadcode.yml over defaults
			// (the precedence internal/config.Load already implies, per
			// SPEC_FULL's CLI domain expansion).
			v := viper.New()
			v.SetConfigName("deadcode")
			v.AddConfigPath(root)
			v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
			v.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
			_ = v.ReadInConfig()

			projCfg, err := config.Load(root)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load deadcode.yml: %v\n", err)
				projCfg = &config.ProjectConfig{}
			}
			if v.IsSet("workers") && workers == 0 {
				workers = v.GetInt("workers")
			}
			if v.GetBool("verbose") {
				verbose = true
			}

			opts := scanOptions{
				root:       root,
				projCfg:    projCfg,
				exclude:    exclude,
				workers:    workers,
				jsonOut:    jsonOut,
				diagramOut: diagramOut,
				verbose:    verbose,
			}

			if !watch {
				return runOnce(opts)
			}
			return runWatch(opts)
		},
	}

	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "additional glob patterns to exclude")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parse worker-pool size (default: min(cores,8))")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON instead of a text report")
	cmd.Flags().StringVar(&diagramOut, "diagram", "", "write a Mermaid reachable/dead diagram to this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print phase-boundary progress to stderr")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-scan whenever a source file under the project root changes")

	return cmd
}

type scanOptions struct {
	root       string
	projCfg    *config.ProjectConfig
	exclude    []string
	workers    int
	jsonOut    bool
	diagramOut string
	verbose    bool
}

func runOnce(opts scanOptions) error {
	cfg := analyzer.Config{
		ProjectRoot:             opts.root,
		Exclude:                 append(opts.projCfg.Exclude, opts.exclude...),
		DynamicPatterns:         opts.projCfg.DynamicPatterns,
		DIDecorators:            opts.projCfg.DIDecorators,
		DIContainerPatterns:     opts.projCfg.DIContainerPatterns,
		DynamicPackageFields:    opts.projCfg.DynamicPackageFields,
		GeneratedPatterns:       opts.projCfg.GeneratedPatterns,
		UseUnifiedEntryDetector: opts.projCfg.UseUnifiedEntryDetector,
		Workers:                 opts.workers,
	}
	if cfg.Workers == 0 {
		cfg.Workers = opts.projCfg.Workers
	}

	var bar *progressbar.ProgressBar
	progress := func(ev analyzer.Event) {
		switch ev.Phase {
		case analyzer.PhaseParse:
			if bar == nil {
				bar = progressbar.NewOptions(ev.Total,
					progressbar.OptionSetDescription("parsing"),
					progressbar.OptionSetWriter(os.Stderr),
				)
			}
			bar.Set(ev.Current)
		default:
			if opts.verbose && ev.Percent == 0 {
				fmt.Fprintf(os.Stderr, "-- %s\n", ev.Phase)
			}
		}
	}

	result, err := analyzer.Scan(context.Background(), cfg, progress)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if opts.diagramOut != "" {
		all := allCandidatePaths(result)
		diagram := export.GenerateReachabilityMermaid(all, reachableSet(result))
		if err := os.WriteFile(opts.diagramOut, []byte(diagram), 0o644); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}
	}

	if opts.projCfg.StorePath != "" {
		if err := persistVerdicts(opts.root, opts.projCfg.StorePath, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist verdict store: %v\n", err)
		}
	}

	if opts.jsonOut {
		exported := resultexport.Build(resultexport.ScanResult{
			FullyDeadFiles:     result.FullyDeadFiles,
			PartiallyDeadFiles: result.PartiallyDeadFiles,
			SkippedDynamic:     result.SkippedDynamic,
			ExcludedGenerated:  result.ExcludedGenerated,
			EntryPoints:        result.EntryPoints,
			Summary:            result.Summary,
		}, time.Now())
		return resultexport.Write(os.Stdout, exported)
	}

	printText(result)
	return nil
}

// runWatch re-runs runOnce whenever a file under opts.root changes,
// debounced to one re-scan per batch of near-simultaneous events (an
// editor save often fires write+chmod+rename in quick succession).
// fsnotify only watches directories directly, so every subdirectory under
// root is registered individually; directories created after start are
// picked up on the next scan only.
func runWatch(opts scanOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, opts.root); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", opts.root)
	if err := runOnce(opts); err != nil {
		fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
	}

	const debounce = 300 * time.Millisecond
	var timer *time.Timer
	rescan := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case rescan <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-rescan:
			fmt.Fprintln(os.Stderr, "-- change detected, re-scanning --")
			if err := runOnce(opts); err != nil {
				fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
			}
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != "." && (name == ".git" || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func printText(result *analyzer.Result) {
	fmt.Printf("entry points:     %d\n", len(result.EntryPoints))
	fmt.Printf("candidates:       %d\n", result.Summary.CandidateCount)
	fmt.Printf("reachable:        %d\n", result.Summary.ReachableCount)
	fmt.Printf("fully dead:       %d (%d bytes)\n", result.Summary.FullyDeadCount, result.Summary.TotalDeadBytes)
	fmt.Printf("possibly live:    %d\n", result.Summary.SkippedDynamicCount)
	fmt.Printf("generated/excl.:  %d\n", len(result.ExcludedGenerated))
	fmt.Println()

	if len(result.FullyDeadFiles) > 0 {
		fmt.Println("dead files (largest first):")
		for _, f := range result.FullyDeadFiles {
			fmt.Printf("  %s  (%d bytes, %d lines)\n", f.Path, f.SizeBytes, f.LineCount)
		}
	}
	if len(result.SkippedDynamic) > 0 {
		fmt.Println("\npossibly-live (matched a dynamic pattern):")
		for _, f := range result.SkippedDynamic {
			fmt.Printf("  %s  (pattern: %s)\n", f.Path, f.MatchedDynamicPattern)
		}
	}
}

// allCandidatePaths reconstructs the candidate set from a Result for
// diagram rendering: every fully-dead, partially-dead and possibly-live
// path, plus every entry point (excluded generated files are left out), sorted for deterministic output. This is an approximation
// of the true candidate list (reachable-but-non-entry files aren't
// individually named in Result) good enough for the dead/reachable
// subgraph split the diagram draws.
func allCandidatePaths(result *analyzer.Result) []string {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range result.EntryPoints {
		add(p)
	}
	for _, f := range result.FullyDeadFiles {
		add(f.Path)
	}
	for _, f := range result.PartiallyDeadFiles {
		add(f.Path)
	}
	for _, f := range result.SkippedDynamic {
		add(f.Path)
	}
	sort.Strings(out)
	return out
}

func reachableSet(result *analyzer.Result) map[string]bool {
	out := make(map[string]bool, len(result.EntryPoints))
	for _, p := range result.EntryPoints {
		out[p] = true
	}
	return out
}

// persistVerdicts writes result into a file-backed KuzuDB store at
// filepath.Join(root, storePath) so a later `deadcode explain --store`
// invocation can answer "why is this dead" without re-scanning.
func persistVerdicts(root, storePath string, result *analyzer.Result) error {
	allFindings := append(append(append([]classify.Finding{}, result.FullyDeadFiles...), result.PartiallyDeadFiles...), result.SkippedDynamic...)

	candidates := allCandidatePaths(result)
	reachable := make(map[string]bool, len(candidates))
	hasFinding := make(map[string]bool, len(allFindings))
	for _, f := range allFindings {
		hasFinding[f.Path] = true
	}
	for _, p := range candidates {
		reachable[p] = !hasFinding[p]
	}

	s, err := store.NewFileStore(filepath.Join(root, storePath))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.InitSchema(ctx); err != nil {
		return err
	}
	return s.PersistResult(ctx, candidates, nil, reachable, allFindings, nil)
}
