package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/server"
)

func newServeCommand() *cobra.Command {
	var dir string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP submission front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}

			srv := server.New(p.engine, p.refs, server.Options{
				LedgerTable: p.cfg.Ledger.Table,
			}, p.log)

			if err := registerCustomForms(srv, p.root); err != nil {
				return err
			}

			if port == 0 {
				port = p.cfg.Server.Port
			}
			return srv.Run(port, p.cfg.Server.AllowOrigins)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}

// registerCustomForms loads forms/*.yaml from the project dir.
func registerCustomForms(srv *server.Server, root string) error {
	matches, err := filepath.Glob(filepath.Join(root, "forms", "*.yaml"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		cfg, err := form.Load(path)
		if err != nil {
			return fmt.Errorf("loading form %s: %w", path, err)
		}
		srv.RegisterForm(cfg)
	}
	return nil
}
