package main

import (
	"fmt"

	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		page       int
		size       int
	)

	cmd := &cobra.Command{
		Use:   "history <card-id>",
		Short: "Show a card's audit trail",
		Long:  "Lists a card's history newest first: creation, field updates, moves, comments, assignees, and tags.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			c, err := card.Get(gormDB, cardID)
			if err != nil {
				return err
			}

			result, err := history.List(gormDB, cardID, c.ProjectID, page, size)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Entries) == 0 {
				fmt.Fprintln(out, "No history found.")
				return nil
			}

			for _, e := range result.Entries {
				fmt.Fprintf(out, "[%s] %-16s %s\n",
					e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.Message)
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d entries)\n", page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 20, "entries per page")
	return cmd
}
