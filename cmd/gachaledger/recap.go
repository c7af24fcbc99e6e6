package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gachaledger/internal/cli"
	"gachaledger/internal/parse"
	"gachaledger/internal/recap"
	"gachaledger/internal/report"
	"gachaledger/internal/tui"
)

func recapCmd() *cobra.Command {
	var (
		appName  string
		currency string
		year     int
		toFile   string
	)

	cmd := &cobra.Command{
		Use:   "recap <export-file>...",
		Short: "Play the year-end spending recap slideshow",
		Long: `Recap builds a year-in-review slide sequence for one app from the
given export files and plays it as a full-screen slideshow. With
--receipt it skips the slideshow and writes the full-year receipt to a
text file instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cur, err := parseCurrency(currency)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().In(parse.KST).Year()
			}

			session, cleanup, err := newSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ingestFiles(ctx, session, args); err != nil {
				return err
			}

			ledger, err := session.Store().Ledger(ctx, appName)
			if err != nil {
				return err
			}

			r, err := recap.Build(appName, year, cur, ledger)
			if err != nil {
				return err
			}

			if toFile != "" {
				if err := os.WriteFile(toFile, []byte(r.ReceiptText()), 0o644); err != nil {
					return fmt.Errorf("failed to write receipt: %w", err)
				}
				cmd.Println(cli.SuccessStyle.Render("Receipt written to " + toFile))
				return nil
			}

			return tui.Run(ctx, r)
		},
	}

	cmd.Flags().StringVar(&appName, "app", report.SpecialtyApp, "app to build the recap for")
	cmd.Flags().StringVar(&currency, "currency", "₩", "currency the recap covers")
	cmd.Flags().IntVar(&year, "year", 0, "recap year (default: current year)")
	cmd.Flags().StringVar(&toFile, "receipt", "", "write the full-year receipt to this file instead of playing the slideshow")

	return cmd
}
