package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitDBCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the database schema and seed the reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open creates the schema and seeds on first contact, and is
			// a no-op against an already initialized database.
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			cfg, _ := ctx.ensureConfig()
			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", cfg.DBPath)
			return nil
		},
	}
}
