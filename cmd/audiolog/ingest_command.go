package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiologapp/audiolog/internal/auth"
	"github.com/audiologapp/audiolog/internal/errors"
	"github.com/audiologapp/audiolog/internal/ingest"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var vendor string
	var csvFile string
	var username string
	var transaction string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import a vendor CSV export into the catalog",
		Long: "Import a vendor CSV export into the catalog. The run is " +
			"authorized by the AUDIOLOG_USERNAME / AUDIOLOG_PASSWORD " +
			"credential pair and executes as a single transaction.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var commit bool
			switch transaction {
			case "commit":
				commit = true
			case "rollback":
				commit = false
			default:
				return errors.Validationf("invalid --transaction %q: want commit or rollback", transaction)
			}

			adapter, err := ingest.ForVendor(vendor)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := auth.VerifyUser(cmd.Context(), s.Queries, cfg.Username, cfg.Password); err != nil {
				return err
			}

			// The catalog rows belong to --username; it defaults to the
			// authenticated user.
			if username == "" {
				username = cfg.Username
			}

			ing := ingest.New(s, log.Logger)
			n, err := ing.IngestFile(cmd.Context(), username, adapter, csvFile, commit)
			if err != nil {
				return err
			}

			verb := "committed"
			if !commit {
				verb = "rolled back"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows ingested, %s\n", n, verb)
			return nil
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "Vendor of the export: audible or cloudlibrary")
	cmd.Flags().StringVar(&csvFile, "csv_file", "", "CSV file to import")
	cmd.Flags().StringVar(&username, "username", "", "Catalog user the rows belong to (defaults to the authenticated user)")
	cmd.Flags().StringVar(&transaction, "transaction", "commit", "Transaction mode: commit or rollback")
	cmd.MarkFlagRequired("vendor")
	cmd.MarkFlagRequired("csv_file")

	return cmd
}
