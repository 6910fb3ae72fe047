package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/column"
	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/project"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newBoardCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "board <project-id>",
		Short: "Show a project's board",
		Long:  "Prints the board column by column, with live cards in position order.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			return runBoard(cmd, gormDB, projectID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	return cmd
}

func runBoard(cmd *cobra.Command, gormDB *gorm.DB, projectID uint) error {
	out := cmd.OutOrStdout()

	p, err := project.Get(gormDB, projectID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", p.Name)

	cols, err := column.ListByProject(gormDB, projectID)
	if err != nil {
		return err
	}

	for _, col := range cols {
		marker := ""
		if col.IsTerminal {
			marker = " *"
		}
		fmt.Fprintf(out, "\n[%d] %s%s\n", col.Position, col.Title, marker)

		cards, err := card.List(gormDB, projectID, card.ListFilters{ColumnID: col.ID})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		empty := true
		for _, c := range cards {
			if c.Status == models.CardStatusDeleted {
				continue
			}
			empty = false
			dueStr := ""
			if c.DueDate != nil {
				dueStr = "due " + c.DueDate.Format(dueDateLayout)
			}
			fmt.Fprintf(w, "  %d.\t#%d\t%s\t%s\t%s\n",
				c.Position, c.ID, truncate(c.Title, 40), c.Priority, dueStr)
		}
		w.Flush()
		if empty {
			fmt.Fprintln(out, "  (empty)")
		}
	}
	return nil
}
