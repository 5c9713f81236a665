package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/ops"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
)

var dataDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "ops",
		Short: "Operator tooling for the monetization sim server",
	}
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "data", "path to the server data directory")

	rootCmd.AddCommand(inspectCmd(), backupCmd(), restoreCmd(), resetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the current save",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, ok, err := ops.InspectSave(dataDir, config.DefaultBalance(), nil)
			if err != nil {
				return err
			}
			if !ok {
				color.Yellow("no save found in %s", dataDir)
				return nil
			}

			title := color.New(color.FgCyan, color.Bold)
			title.Printf("Save in %s\n\n", dataDir)

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Field", "Value"}),
			)
			rows := [][]string{
				{"Player", sum.PlayerName},
				{"Company", sum.CompanyName},
				{"Money", fmt.Sprintf("$%.2f", sum.Money)},
				{"Total earned", fmt.Sprintf("$%.2f", sum.TotalMoneyEarned)},
				{"Leads", fmt.Sprintf("%d", sum.Leads)},
				{"Income rate", fmt.Sprintf("$%.2f/s", sum.IncomeRate)},
				{"Play time", (time.Duration(sum.PlayTimeSeconds) * time.Second).String()},
				{"Staff hired", fmt.Sprintf("%d", sum.HiredStaff)},
				{"Achievements", fmt.Sprintf("%d", sum.AchievementsUnlocked)},
				{"Last saved", sum.LastSavedTime.Local().Format(time.RFC1123)},
			}
			for _, row := range rows {
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func backupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory to a .tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				ts := time.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "monetization-"+ts+".tar.gz")
			}
			if err := ops.BackupDataDir(dataDir, out); err != nil {
				return err
			}
			color.Green("backed up %s to %s", dataDir, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output archive path (.tar.gz)")
	return cmd
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <archive>",
		Short: "Restore a data directory from a backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ops.RestoreDataDir(args[0], dataDir); err != nil {
				return err
			}
			color.Green("restored %s into %s", args[0], dataDir)
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the save (the next server start begins a new game)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the save without --yes")
			}
			store, err := save.NewFileStore(dataDir)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			color.Green("save cleared in %s", dataDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
