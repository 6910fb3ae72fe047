package main

import (
	"fmt"

	"github.com/oriente/oriente/internal/integrity"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var (
		configPath string
		repair     bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check position integrity",
		Long:  "Scans every project's columns and every column's live cards for gaps or duplicate positions. With --repair, broken containers are renumbered in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, configPath, repair)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().BoolVar(&repair, "repair", false, "renumber broken containers")
	return cmd
}

func runDoctor(cmd *cobra.Command, configPath string, repair bool) error {
	out := cmd.OutOrStdout()

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	issues, err := integrity.Check(gormDB)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, "All position sequences are dense.")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintf(out, "[FAIL] %s\n", issue)
	}

	if !repair {
		return fmt.Errorf("%d container(s) broken; re-run with --repair to fix", len(issues))
	}

	n, err := integrity.Repair(gormDB)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRepaired %d container(s).\n", n)
	return nil
}
