package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/backup"
	"github.com/cinenz0/finance-tracker/internal/cli"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and restore full snapshots",
	}

	cmd.AddCommand(backupExportCmd())
	cmd.AddCommand(backupRestoreCmd())

	return cmd
}

func backupExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of all data to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			snap, err := backup.NewCodec(kv).Export(ctx)
			if err != nil {
				return err
			}

			sink, err := backup.NewFileSink(backupDir())
			if err != nil {
				return err
			}

			name := output
			if name == "" {
				name = backup.DailyName(time.Now())
			}
			path, err := sink.Save(snap, name)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Snapshot written to %s", path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file name (default daily name)")

	return cmd
}

func backupRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace all data with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sink, err := backup.NewFileSink(backupDir())
			if err != nil {
				return err
			}

			// Bare names resolve against the backup directory.
			path := args[0]
			if _, statErr := os.Stat(path); statErr != nil && sink.Exists(path) {
				path = filepath.Join(backupDir(), path)
			}

			snap, err := sink.Open(path)
			if err != nil {
				return err
			}

			if !yes {
				fmt.Print(cli.FormatWarning("This overwrites your current data. Continue? [y/N] "))
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println(cli.FormatInfo("Restore cancelled"))
					return nil
				}
			}

			kv, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := backup.NewCodec(kv).Restore(ctx, snap); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored snapshot (format %s)", snap.Version)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
