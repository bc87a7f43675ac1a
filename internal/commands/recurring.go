package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/budgie-dev/budgie/internal/ledger"
	"github.com/budgie-dev/budgie/internal/recurring"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring expenses",
	}
	cmd.AddCommand(newRecurringProcessCommand())
	cmd.AddCommand(newRecurringListCommand())
	return cmd
}

func newRecurringProcessCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Post all due recurring expenses to the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			svc, err := openRecurring(p)
			if err != nil {
				return err
			}

			posted, err := svc.Process(time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Posted %d recurring expense(s).\n", posted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")
	return cmd
}

func newRecurringListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring expense rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			svc, err := openRecurring(p)
			if err != nil {
				return err
			}

			rules, _, err := svc.Rules()
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Println("No recurring rules.")
				return nil
			}
			for _, r := range rules {
				state := "active"
				if !r.Active {
					state = "inactive"
				}
				fmt.Printf("%3d  %-30s %10s  %-10s next %s  [%s]\n",
					r.ID, r.Description, r.Amount.StringFixed(2),
					r.Frequency, r.NextDue.Format("2006-01-02"), state)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")
	return cmd
}

func openRecurring(p *project) (*recurring.Service, error) {
	led, err := ledger.New(p.store, p.cfg.Ledger.Table)
	if err != nil {
		return nil, err
	}
	return recurring.NewService(p.store, led, p.refs, p.cfg.Household.Currency, p.log)
}
