package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gachaledger/internal/cli"
	"gachaledger/internal/model"
	"gachaledger/internal/report"
)

func analyzeCmd() *cobra.Command {
	var (
		appName  string
		currency string
		filter   string
		series   bool
		history  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <export-file>...",
		Short: "Ingest export files and print spending summaries",
		Long: `Analyze ingests one or more export files (Google Play order-history
JSON, App Store invoice HTML), merges them into a single deduplicated
ledger and prints spending summaries.

Without flags it prints the overview: grand totals per currency and the
per-app ranking. With --app it adds that app's monthly breakdown and its
item-group sub-reports. --series prints the half-year cumulative trend of
the top apps.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cur, err := parseCurrency(currency)
			if err != nil {
				return err
			}

			session, cleanup, err := newSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ingestFiles(ctx, session, args); err != nil {
				return err
			}
			if err := session.RequireTransactions(ctx); err != nil {
				return err
			}

			agg := report.NewAggregator(session.Store())

			if err := printOverview(cmd, agg, cur); err != nil {
				return err
			}
			if appName != "" {
				if err := printAppReport(cmd, agg, appName, cur, filter); err != nil {
					return err
				}
			}
			if series {
				if err := printHalfYearSeries(cmd, agg, cur); err != nil {
					return err
				}
			}
			if history {
				if err := printHistory(cmd, agg, cur); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appName, "app", "", "also print this app's monthly breakdown and sub-reports")
	cmd.Flags().StringVar(&currency, "currency", "₩", "currency for rankings and series")
	cmd.Flags().StringVar(&filter, "filter", "", "with --app, only list items whose title contains this text")
	cmd.Flags().BoolVar(&series, "series", false, "print the half-year cumulative trend")
	cmd.Flags().BoolVar(&history, "history", false, "list every transaction, newest first")

	return cmd
}

func printHistory(cmd *cobra.Command, agg *report.Aggregator, cur model.Currency) error {
	all, err := agg.History(cmd.Context(), cur)
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(cli.TitleStyle.Render("Full history"))
	for _, txn := range all {
		cmd.Printf("  %s  %-24s %s  %s\n",
			txn.DateKey(),
			truncateCell(txn.App, 24),
			cli.FormatMoney(txn.Price, cur),
			cli.SubtleStyle.Render(txn.Title))
	}
	return nil
}

func printOverview(cmd *cobra.Command, agg *report.Aggregator, cur model.Currency) error {
	overview, err := agg.Overview(cmd.Context(), cur)
	if err != nil {
		return err
	}

	cmd.Println(cli.TitleStyle.Render("Overview"))
	for currency, total := range overview.GrandTotals {
		cmd.Printf("  total %s\n", cli.AmountStyle.Render(cli.FormatMoney(total, currency)))
	}
	if overview.TopSpender != nil {
		cmd.Printf("  top spender: %s (%s)\n",
			cli.BoldStyle.Render(overview.TopSpender.App),
			cli.FormatMoney(overview.TopSpender.Total, overview.TopSpender.Currency))
	}

	if len(overview.AppsByTotal) > 0 {
		cmd.Println()
		cmd.Println(cli.TableHeaderStyle.Render("  App ranking"))
		for i, at := range overview.AppsByTotal {
			cmd.Printf("  %2d. %s  %s\n", i+1, at.App, cli.FormatMoney(at.Total, cur))
		}
	}
	return nil
}

func printAppReport(cmd *cobra.Command, agg *report.Aggregator, app string, cur model.Currency, filter string) error {
	ctx := cmd.Context()

	buckets, err := agg.MonthlyReport(ctx, app, cur)
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(cli.TitleStyle.Render(app))
	if len(buckets) == 0 {
		cmd.Println(cli.SubtleStyle.Render("  no purchases in this currency"))
		return nil
	}

	for _, bucket := range buckets {
		cmd.Printf("  %s  %s\n",
			cli.BoldStyle.Render(cli.FormatMonth(bucket.Month)),
			cli.FormatMoney(bucket.Total, cur))
		items := report.FilterByTitle(bucket.Items, filter)
		for _, txn := range items {
			cmd.Printf("    %s  %s  %s\n",
				txn.DateKey(), txn.Title, cli.FormatMoney(txn.Price, cur))
		}
		if filter != "" && len(items) == 0 {
			cmd.Println(cli.SubtleStyle.Render("    (no items match the filter)"))
		}
	}

	subs, err := agg.SubReports(ctx, app, cur)
	if err != nil {
		return err
	}
	printed := false
	for _, sub := range subs {
		if sub.Total == 0 {
			continue
		}
		if !printed {
			cmd.Println()
			cmd.Println(cli.TableHeaderStyle.Render("  Item groups"))
			printed = true
		}
		cmd.Printf("  %s  %s\n", sub.Group.Name, cli.FormatMoney(sub.Total, cur))
	}
	return nil
}

func printHalfYearSeries(cmd *cobra.Command, agg *report.Aggregator, cur model.Currency) error {
	series, err := agg.HalfYearSeries(cmd.Context(), cur)
	if err != nil {
		return err
	}
	if len(series.Periods) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println(cli.TitleStyle.Render("Half-year cumulative totals"))

	header := make([]string, 0, len(series.Periods)+1)
	header = append(header, fmt.Sprintf("%-24s", ""))
	for _, p := range series.Periods {
		header = append(header, fmt.Sprintf("%10s", p.Key()))
	}
	cmd.Println(cli.TableHeaderStyle.Render(strings.Join(header, " ")))

	for _, line := range series.Lines {
		row := make([]string, 0, len(line.Cumulative)+1)
		row = append(row, fmt.Sprintf("%-24s", truncateCell(line.App, 24)))
		for _, v := range line.Cumulative {
			row = append(row, fmt.Sprintf("%10s", cli.FormatMoney(v, cur)))
		}
		cmd.Println(strings.Join(row, " "))
	}
	return nil
}

func truncateCell(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
