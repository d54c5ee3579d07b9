package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render catalog reports as text tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newReportBooksCommand(ctx))
	cmd.AddCommand(newReportAuthorsCommand(ctx))
	cmd.AddCommand(newReportSummaryCommand(ctx))

	return cmd
}

func newReportBooksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List every book, sorted by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			books, err := report.New(s.Queries).Books(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(books))
			for _, b := range books {
				rows = append(rows, table.Row{
					b.Title,
					personNames(b.Authors),
					personNames(b.Narrators),
					b.Length,
					b.AcquisitionDate,
					b.Status,
					b.FinishDate,
					b.Rating,
				})
			}
			out := renderTable(
				table.Row{"Title", "Authors", "Narrators", "Length", "Acquired", "Status", "Finished", "Rating"},
				rows, 4)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newReportAuthorsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List every author with their books, sorted by surname",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			authors, err := report.New(s.Queries).PersonsWithBooks(cmd.Context(), domain.RoleAuthor)
			if err != nil {
				return err
			}

			var rows []table.Row
			for _, a := range authors {
				for _, b := range a.Books {
					rows = append(rows, table.Row{a.ReverseName, b.Title, b.Length})
				}
			}
			out := renderTable(table.Row{"Author", "Title", "Length"}, rows, 3)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newReportSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-year counts and catalog totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sum, err := report.New(s.Queries).Summarize(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(sum.CountsByYear))
			for _, c := range sum.CountsByYear {
				rows = append(rows, table.Row{c.Year, c.Acquired, c.Finished})
			}
			out := renderTable(table.Row{"Year", "Acquired", "Finished"}, rows, 2, 3)

			totals := renderTable(
				table.Row{"Total", "Count"},
				[]table.Row{
					{"Books acquired", sum.Totals.Acquired},
					{"Books finished", sum.Totals.DistinctFinished},
					{"Books not finished", sum.Totals.NotFinished},
					{"Finishes incl. rereads", sum.Totals.AllFinished},
				}, 2)

			fmt.Fprintln(cmd.OutOrStdout(), out)
			fmt.Fprintln(cmd.OutOrStdout(), totals)
			return nil
		},
	}
}

func personNames(persons []report.Person) string {
	names := make([]string, 0, len(persons))
	for _, p := range persons {
		names = append(names, p.DisplayName)
	}
	return strings.Join(names, " & ")
}
