package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newErrorsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List rejected submissions from the validation error log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}

			entries, err := p.errlog.Read()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No validation errors logged.")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%s  %s  %q  %s\n",
					e.Timestamp.Format("2006-01-02 15:04"),
					e.SubmissionID, e.Description, e.Amount)
				fmt.Printf("    %s\n", strings.Join(e.Errors, "; "))
			}
			fmt.Printf("%d rejected submission(s).\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")
	return cmd
}
