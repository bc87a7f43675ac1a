package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgie-dev/budgie/internal/config"
	"github.com/budgie-dev/budgie/internal/gitops"
	"github.com/budgie-dev/budgie/internal/ledger"
	"github.com/budgie-dev/budgie/internal/refs"
	"github.com/budgie-dev/budgie/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var person string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Budgie project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, person, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "household name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&person, "person", "", "primary person name")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git init and initial commit")

	return cmd
}

func runInit(dir, name, person string, noGit bool) error {
	cfg := config.Default(name, person)

	dirs := []string{
		cfg.Ledger.DataDir,
		cfg.Ledger.ImportDir,
		filepath.Join(cfg.Ledger.ImportDir, "processed"),
		"forms",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, "budgie.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	st, err := store.NewCSVStore(filepath.Join(dir, cfg.Ledger.DataDir))
	if err != nil {
		return err
	}
	if err := refs.Seed(st, person); err != nil {
		return fmt.Errorf("seeding reference tables: %w", err)
	}
	if _, err := ledger.New(st, cfg.Ledger.Table); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Ledger.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if noGit {
		fmt.Printf("Initialized Budgie project at %s\n", dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized Budgie project at %s (%s)\n", dir, hash)
	return nil
}
