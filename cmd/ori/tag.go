package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/oriente/oriente/internal/tag"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag management commands",
	}

	cmd.AddCommand(newTagCreateCmd())
	cmd.AddCommand(newTagListCmd())
	cmd.AddCommand(newTagAttachCmd())
	cmd.AddCommand(newTagDetachCmd())
	return cmd
}

func newTagCreateCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
		name       string
		color      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			t, err := tag.Create(gormDB, projectID, name, color)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %d (%s)\n", t.ID, t.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&projectID, "project", 0, "project ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "tag name (required)")
	cmd.Flags().StringVar(&color, "color", "", "hex color")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newTagListCmd() *cobra.Command {
	var (
		configPath string
		projectID  uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			tags, err := tag.ListByProject(gormDB, projectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLOR")
			for _, t := range tags {
				fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, t.Color)
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

func newTagAttachCmd() *cobra.Command {
	var (
		configPath string
		cardID     uint
		actor      uint
	)

	cmd := &cobra.Command{
		Use:   "attach <tag-id>",
		Short: "Attach a tag to a card",
		Long:  "Attaches a tag to a card of the same project and records it in the card's history. Re-attaching is a no-op.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := tag.Attach(gormDB, cardID, tagID, actorPtr(actor), localeOf(cfg)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Attached tag %d to card %d\n", tagID, cardID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&cardID, "card", 0, "card ID (required)")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	cmd.MarkFlagRequired("card")
	return cmd
}

func newTagDetachCmd() *cobra.Command {
	var (
		configPath string
		cardID     uint
		actor      uint
	)

	cmd := &cobra.Command{
		Use:   "detach <tag-id>",
		Short: "Detach a tag from a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := tag.Detach(gormDB, cardID, tagID, actorPtr(actor), localeOf(cfg)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Detached tag %d from card %d\n", tagID, cardID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&cardID, "card", 0, "card ID (required)")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	cmd.MarkFlagRequired("card")
	return cmd
}
