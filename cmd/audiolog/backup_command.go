package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/audiologapp/audiolog/internal/backup"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a point-in-time copy of the catalog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			log, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			info, err := backup.NewService(s, dir, log.Logger).Create(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written: %s (%d bytes)\n", info.Path, info.SizeBytes)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "backups", "Directory backups are written to")

	cmd.AddCommand(newBackupListCommand(ctx, &dir))
	return cmd
}

func newBackupListCommand(ctx *commandContext, dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List existing backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			infos, err := backup.NewService(nil, *dir, log.Logger).List()
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, table.Row{
					info.Name,
					info.SizeBytes,
					info.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			out := renderTable(table.Row{"Name", "Bytes", "Created"}, rows, 2)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
