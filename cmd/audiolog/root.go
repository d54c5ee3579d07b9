package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	var dbFlag string
	var envFileFlag string
	var logFileFlag string
	var logLevelFlag string

	ctx := newCommandContext(&dbFlag, &envFileFlag, &logFileFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "audiolog",
		Short:         "Personal audiobook catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db_file", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env_file", ".env", "Environment file path")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log_file", "", "Log file path (stderr when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log_level", "", "Log level: debug, info, warning, error, or critical")

	rootCmd.AddCommand(newInitDBCommand(ctx))
	rootCmd.AddCommand(newCreateUserCommand(ctx))
	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newReportCommand(ctx))
	rootCmd.AddCommand(newBackupCommand(ctx))

	return rootCmd
}
