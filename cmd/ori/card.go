package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/oriente/oriente/internal/card"
	"github.com/spf13/cobra"
)

const dueDateLayout = "2006-01-02"

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Card management commands",
	}

	cmd.AddCommand(newCardAddCmd())
	cmd.AddCommand(newCardListCmd())
	cmd.AddCommand(newCardShowCmd())
	cmd.AddCommand(newCardUpdateCmd())
	cmd.AddCommand(newCardMoveCmd())
	cmd.AddCommand(newCardStatusCmd())
	cmd.AddCommand(newCardRemoveCmd())
	return cmd
}

func newCardAddCmd() *cobra.Command {
	var (
		configPath  string
		projectID   uint
		columnID    uint
		title       string
		description string
		priority    string
		due         string
		position    int
		assignees   []uint
		actor       uint
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a card",
		Long:  "Creates a card in a column. Without --position it is appended; with it, cards at or after that slot shift right. The creation lands in the card's history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			opts := card.CreateOpts{
				Title:       title,
				Description: description,
				Priority:    priority,
				ColumnID:    columnID,
				AssigneeIDs: assignees,
				Locale:      localeOf(cfg),
			}
			if cmd.Flags().Changed("position") {
				opts.Position = &position
			}
			if due != "" {
				d, err := time.Parse(dueDateLayout, due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", due)
				}
				opts.DueDate = &d
			}

			c, err := card.Create(gormDB, projectID, opts, actorPtr(actor))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created card %d (%s) at position %d\n",
				c.ID, c.Title, c.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project ID (required)")
	cmd.Flags().UintVar(&columnID, "column", 0, "column ID (required)")
	cmd.Flags().StringVar(&title, "title", "", "card title (required)")
	cmd.Flags().StringVar(&description, "description", "", "card description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high, urgent)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&position, "position", 0, "insertion position (default: append)")
	cmd.Flags().UintSliceVar(&assignees, "assignee", nil, "assignee user ID (repeatable)")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("column")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newCardListCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
		status     string
		priority   string
		columnID   uint
		assigneeID uint
		dueSoon    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's cards",
		Long:  "Lists cards in board order (column position, then card position) with optional filters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			cards, err := card.List(gormDB, projectID, card.ListFilters{
				Status:     status,
				Priority:   priority,
				ColumnID:   columnID,
				AssigneeID: assigneeID,
				DueSoon:    dueSoon,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No cards found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOLUMN\tPOS\tPRIORITY\tSTATUS\tDUE")
			for _, c := range cards {
				colTitle := "-"
				if c.Column != nil {
					colTitle = c.Column.Title
				}
				dueStr := "-"
				if c.DueDate != nil {
					dueStr = c.DueDate.Format(dueDateLayout)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
					c.ID, truncate(c.Title, 40), colTitle, c.Position, c.Priority, c.Status, dueStr)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project ID (required)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, archived, deleted)")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	cmd.Flags().UintVar(&columnID, "column", 0, "filter by column ID")
	cmd.Flags().UintVar(&assigneeID, "assignee", 0, "filter by assignee user ID")
	cmd.Flags().BoolVar(&dueSoon, "due-soon", false, "only cards due within 7 days")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newCardShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show card details",
		Long:  "Displays full details of a card including assignees and tags.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			c, err := card.Get(gormDB, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %d\n", c.ID)
			fmt.Fprintf(out, "Title:       %s\n", c.Title)
			if c.Column != nil {
				fmt.Fprintf(out, "Column:      %s (position %d)\n", c.Column.Title, c.Position)
			} else {
				fmt.Fprintf(out, "Position:    %d\n", c.Position)
			}
			fmt.Fprintf(out, "Status:      %s\n", c.Status)
			fmt.Fprintf(out, "Priority:    %s\n", c.Priority)
			if c.DueDate != nil {
				fmt.Fprintf(out, "Due:         %s\n", c.DueDate.Format(dueDateLayout))
			}
			if c.CompletedAt != nil {
				fmt.Fprintf(out, "Completed:   %s\n", c.CompletedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(out, "Created:     %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Updated:     %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))

			if len(c.Assignees) > 0 {
				fmt.Fprintln(out, "\nAssignees:")
				for _, u := range c.Assignees {
					fmt.Fprintf(out, "  %d  %s\n", u.ID, u.Name)
				}
			}
			if len(c.Tags) > 0 {
				fmt.Fprintln(out, "\nTags:")
				for _, t := range c.Tags {
					fmt.Fprintf(out, "  %d  %s\n", t.ID, t.Name)
				}
			}
			if c.Description != "" {
				fmt.Fprintf(out, "\nDescription:\n%s\n", c.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	return cmd
}

func newCardUpdateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		description string
		priority    string
		due         string
		clearDue    bool
		assignees   []uint
		actor       uint
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a card",
		Long:  "Updates card fields. Title, description, and due date changes produce one history entry; assignee changes produce one per affected user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			opts := card.UpdateOpts{}
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				opts.Priority = &priority
			}
			if clearDue {
				opts.SetDueDate = true
			} else if due != "" {
				d, err := time.Parse(dueDateLayout, due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", due)
				}
				opts.DueDate = &d
				opts.SetDueDate = true
			}
			if cmd.Flags().Changed("assignee") {
				opts.AssigneeIDs = assignees
				opts.SetAssignees = true
			}

			if opts.Title == nil && opts.Description == nil && opts.Priority == nil &&
				!opts.SetDueDate && !opts.SetAssignees {
				return fmt.Errorf("no fields to update; use --title, --description, --priority, --due, --clear-due, or --assignee")
			}

			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			opts.Locale = localeOf(cfg)

			c, err := card.Update(gormDB, id, opts, actorPtr(actor))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated card %d (%s)\n", c.ID, c.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (low, medium, high, urgent)")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().UintSliceVar(&assignees, "assignee", nil, "full replacement assignee set (repeatable; empty clears)")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	return cmd
}

func newCardMoveCmd() *cobra.Command {
	var (
		configPath string
		columnID   uint
		position   int
		actor      uint
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a card",
		Long:  "Moves a card within its column or to another column of the same project. Cross-column moves land in the card's history and toggle completion when the destination is a terminal column.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			c, desc, err := card.Move(gormDB, id, card.MoveOpts{
				ColumnID: columnID,
				Position: position,
				Locale:   localeOf(cfg),
			}, actorPtr(actor))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if desc != nil {
				fmt.Fprintf(out, "Moved card %d from %q to %q (position %d)\n",
					c.ID, desc.FromColumn, desc.ToColumn, c.Position)
			} else {
				fmt.Fprintf(out, "Moved card %d to position %d\n", c.ID, c.Position)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&columnID, "column", 0, "destination column ID (required)")
	cmd.Flags().IntVar(&position, "position", 0, "destination position")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	cmd.MarkFlagRequired("column")
	return cmd
}

func newCardStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <id> <active|archived|deleted>",
		Short: "Change a card's status",
		Long:  "Sets a card's status. Deleting frees the card's position slot; restoring a deleted card appends it at the end of its column.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			c, err := card.SetStatus(gormDB, id, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Card %d is now %s\n", c.ID, c.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	return cmd
}

func newCardRemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Permanently delete a card",
		Long:  "Deletes a card, its comments, and its assignee/tag links, and closes its position slot. History entries are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := card.Delete(gormDB, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	return cmd
}
