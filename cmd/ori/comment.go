package main

import (
	"fmt"

	"github.com/oriente/oriente/internal/comment"
	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment management commands",
	}

	cmd.AddCommand(newCommentAddCmd())
	cmd.AddCommand(newCommentListCmd())
	cmd.AddCommand(newCommentRemoveCmd())
	return cmd
}

func newCommentAddCmd() *cobra.Command {
	var (
		configPath string
		cardID     uint
		body       string
		actor      uint
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Comment on a card",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			cm, err := comment.Add(gormDB, cardID, actorPtr(actor), body, localeOf(cfg))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added comment %d on card %d\n", cm.ID, cardID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&cardID, "card", 0, "card ID (required)")
	cmd.Flags().StringVar(&body, "body", "", "comment text (required)")
	cmd.Flags().UintVar(&actor, "actor", 0, "authoring user ID (0 = system)")
	cmd.MarkFlagRequired("card")
	cmd.MarkFlagRequired("body")
	return cmd
}

func newCommentListCmd() *cobra.Command {
	var (
		configPath string
		cardID     uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a card's comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			comments, err := comment.ListByCard(gormDB, cardID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(comments) == 0 {
				fmt.Fprintln(out, "No comments found.")
				return nil
			}

			for _, cm := range comments {
				author := "Sistema"
				if cm.Author != nil {
					author = cm.Author.Name
				}
				fmt.Fprintf(out, "[%d] %s (%s):\n%s\n\n",
					cm.ID, author, cm.CreatedAt.Format("2006-01-02 15:04"), cm.Body)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&cardID, "card", 0, "card ID (required)")
	cmd.MarkFlagRequired("card")
	return cmd
}

func newCommentRemoveCmd() *cobra.Command {
	var (
		configPath string
		actor      uint
	)

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a comment",
		Long:  "Deletes a comment and records the deletion in the card's history.",
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

			if err := comment.Delete(gormDB, id, actorPtr(actor), localeOf(cfg)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().UintVar(&actor, "actor", 0, "acting user ID (0 = system)")
	return cmd
}
