package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/oriente/oriente/internal/column"
	"github.com/spf13/cobra"
)

func newColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Column management commands",
	}

	cmd.AddCommand(newColumnAddCmd())
	cmd.AddCommand(newColumnListCmd())
	cmd.AddCommand(newColumnUpdateCmd())
	cmd.AddCommand(newColumnMoveCmd())
	cmd.AddCommand(newColumnRemoveCmd())
	return cmd
}

func newColumnAddCmd() *cobra.Command {
	var (
		configPath  string
		projectID   uint
		title       string
		description string
		color       string
		position    int
		terminal    bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a column to a project",
		Long:  "Creates a column. Without --position it is appended; with it, columns at or after that slot shift right.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			opts := column.CreateOpts{
				Title:       title,
				Description: description,
				Color:       color,
			}
			if cmd.Flags().Changed("position") {
				opts.Position = &position
			}
			if cmd.Flags().Changed("terminal") {
				opts.Terminal = &terminal
			}

			col, err := column.Create(gormDB, projectID, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created column %d (%s) at position %d\n",
				col.ID, col.Title, col.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project ID (required)")
	cmd.Flags().StringVar(&title, "title", "", "column title (required)")
	cmd.Flags().StringVar(&description, "description", "", "column description")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #6366f1")
	cmd.Flags().IntVar(&position, "position", 0, "insertion position (default: append)")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "cards moved here count as completed")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newColumnListCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			cols, err := column.ListByProject(gormDB, projectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cols) == 0 {
				fmt.Fprintln(out, "No columns found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tID\tTITLE\tCOLOR\tTERMINAL")
			for _, col := range cols {
				terminal := "-"
				if col.IsTerminal {
					terminal = "yes"
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
					col.Position, col.ID, col.Title, col.Color, terminal)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newColumnUpdateCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		description string
		color       string
		terminal    bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a column",
		Long:  "Updates column fields. Position is handled by 'column move'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			opts := column.UpdateOpts{}
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}
			if cmd.Flags().Changed("color") {
				opts.Color = &color
			}
			if cmd.Flags().Changed("terminal") {
				opts.Terminal = &terminal
			}
			if opts.Title == nil && opts.Description == nil && opts.Color == nil && opts.Terminal == nil {
				return fmt.Errorf("no fields to update; use --title, --description, --color, or --terminal")
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			col, err := column.Update(gormDB, id, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated column %d (%s)\n", col.ID, col.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "whether cards moved here count as completed")
	return cmd
}

func newColumnMoveCmd() *cobra.Command {
	var (
		configPath string
		position   int
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Reorder a column within its project",
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

			col, err := column.Move(gormDB, id, position)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved column %d (%s) to position %d\n",
				col.ID, col.Title, col.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().IntVar(&position, "position", 0, "target position (required)")
	cmd.MarkFlagRequired("position")
	return cmd
}

func newColumnRemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a column",
		Long:  "Deletes a column and closes its position slot. A column still holding live cards is refused.",
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

			if err := column.Delete(gormDB, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted column %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	return cmd
}
