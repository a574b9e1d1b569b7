package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deadcode/internal/analyzer"
	"github.com/dusk-indust/deadcode/internal/config"
	"github.com/dusk-indust/deadcode/internal/explain"
	"github.com/dusk-indust/deadcode/internal/store"
)

func explainCmd() *cobra.Command {
	var (
		root      string
		storePath string
	)

	cmd := &cobra.Command{
		Use:   "explain <path>",
		Short: "Explain why a file was classified the way it was",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			if storePath != "" {
				return explainFromStore(storePath, target)
			}
			return explainFromScan(root, target)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "project root to scan")
	cmd.Flags().StringVar(&storePath, "store", "", "path to a persisted verdict store (skips re-scanning)")

	return cmd
}

func explainFromStore(storePath, target string) error {
	s, err := store.NewFileStore(storePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	ex, err := s.WhyDead(context.Background(), target)
	if err != nil {
		return fmt.Errorf("query store: %w", err)
	}
	if ex == nil {
		fmt.Printf("%s: no record in store (never scanned, or path mismatch)\n", target)
		return nil
	}

	fmt.Print(explain.Format(explain.Evidence{
		Path:       ex.Path,
		Verdict:    ex.Verdict,
		ImportedBy: ex.ImportedBy,
	}))
	return nil
}

func explainFromScan(root, target string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	projCfg, err := config.Load(abs)
	if err != nil {
		projCfg = &config.ProjectConfig{}
	}

	cfg := analyzer.Config{
		ProjectRoot:             abs,
		Exclude:                 projCfg.Exclude,
		DynamicPatterns:         projCfg.DynamicPatterns,
		DIDecorators:            projCfg.DIDecorators,
		DIContainerPatterns:     projCfg.DIContainerPatterns,
		DynamicPackageFields:    projCfg.DynamicPackageFields,
		GeneratedPatterns:       projCfg.GeneratedPatterns,
		UseUnifiedEntryDetector: projCfg.UseUnifiedEntryDetector,
		Workers:                 projCfg.Workers,
	}

	result, err := analyzer.Scan(context.Background(), cfg, nil)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	status, ev := explain.Lookup(result, target)
	if status == explain.StatusReachable {
		fmt.Printf("%s: reachable (not dead, not an entry point)\n", target)
		return nil
	}
	fmt.Print(explain.Format(ev))
	return nil
}
