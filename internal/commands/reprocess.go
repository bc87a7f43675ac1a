package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/gitops"
	"github.com/budgie-dev/budgie/internal/importer"
	"github.com/budgie-dev/budgie/internal/ingest"
)

func newReprocessCommand() *cobra.Command {
	var dir string
	var formName string
	var from, to int

	cmd := &cobra.Command{
		Use:   "reprocess [file]",
		Short: "Reprocess archived form responses into the ledger",
		Long: "Reprocess archived form responses into the ledger.\n\n" +
			"With a file argument, processes that file. Without one, processes\n" +
			"every importable file in the project's import/ directory and moves\n" +
			"each to import/processed/ when done.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}

			cfg, err := resolveForm(p.root, formName)
			if err != nil {
				return err
			}
			reg := importer.DefaultRegistry()

			if len(args) == 1 {
				return reprocessFile(p, reg, cfg, args[0], from, to, false)
			}

			files, err := importer.Scan(p.root, reg)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to import.")
				return nil
			}
			for _, f := range files {
				if err := reprocessFile(p, reg, cfg, f.Path, from, to, true); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")
	cmd.Flags().StringVar(&formName, "form", "expense", "form config to validate against")
	cmd.Flags().IntVar(&from, "from", 0, "first data row to process (1-based)")
	cmd.Flags().IntVar(&to, "to", 0, "last data row to process (1-based)")

	return cmd
}

func reprocessFile(p *project, reg *importer.Registry, cfg *form.Config, path string, from, to int, markDone bool) error {
	parser := reg.Get(path)
	if parser == nil {
		return fmt.Errorf("no parser for %s", path)
	}
	src, err := parser.Parse(path)
	if err != nil {
		return err
	}

	summary, err := p.engine.Reprocess(src, cfg, from, to, printOutcome)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d processed, %d imported, %d skipped, %d rejected\n",
		summary.Source, summary.Processed, summary.Imported, summary.Skipped, summary.Rejected)

	if markDone {
		if err := importer.MarkProcessed(p.root, filepath.Base(path)); err != nil {
			return err
		}
	}

	if p.cfg.Git.AutoCommit && gitops.IsRepo(p.root) {
		changed, err := gitops.HasChanges(p.root)
		if err != nil {
			return err
		}
		if changed {
			msg := fmt.Sprintf("import: %s (%d imported)", summary.Source, summary.Imported)
			if _, err := gitops.CommitAll(p.root, msg, p.cfg.Git.AuthorName, p.cfg.Git.AuthorEmail); err != nil {
				return err
			}
		}
	}
	return nil
}

func printOutcome(o ingest.Outcome) {
	switch {
	case o.Skipped:
		fmt.Printf("  row %d: skipped (duplicate)\n", o.Row)
	case o.Result.Accepted:
		fmt.Printf("  row %d: imported as record %d\n", o.Row, o.Result.RecordID)
	default:
		fmt.Printf("  row %d: rejected (%d errors)\n", o.Row, len(o.Result.Errors))
	}
}

// resolveForm returns the built-in expense form or a named custom form from
// forms/<name>.yaml.
func resolveForm(root, name string) (*form.Config, error) {
	if name == "" || name == "expense" {
		return form.ExpenseForm(), nil
	}
	path := filepath.Join(root, "forms", name+".yaml")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown form %q: %w", name, err)
	}
	return form.Load(path)
}
