package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gachaledger/internal/classify"
	"gachaledger/internal/cli"
	"gachaledger/internal/common"
	"gachaledger/internal/config"
)

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Inspect and manage the classification keyword table",
	}

	cmd.AddCommand(keywordsListCmd())
	cmd.AddCommand(keywordsCheckCmd())
	cmd.AddCommand(keywordsInitCmd())

	return cmd
}

func keywordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active keyword table in priority order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := config.LoadKeywordTable(viper.GetString("keywords_file"))
			if err != nil {
				return err
			}

			cmd.Println(cli.TitleStyle.Render("Keyword table"))
			cmd.Println(cli.SubtitleStyle.Render(
				fmt.Sprintf("%d apps, first match wins", len(table.Entries()))))
			for i, entry := range table.Entries() {
				cmd.Printf("  %2d. %s\n", i+1, cli.BoldStyle.Render(entry.App))
				cmd.Printf("      %s\n", cli.SubtleStyle.Render(strings.Join(entry.Keywords, ", ")))
			}
			return nil
		},
	}
}

func keywordsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <text>",
		Short: "Show how a purchase text would be classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.LoadKeywordTable(viper.GetString("keywords_file"))
			if err != nil {
				return err
			}

			classifier := classify.NewClassifier(table)
			app, ok := classifier.Classify(args[0], "")
			if !ok {
				cmd.Println(cli.WarningStyle.Render("Excluded: this text is dropped entirely (wallet top-up or store credit)."))
				return nil
			}
			cmd.Printf("%s → %s\n", args[0], cli.BoldStyle.Render(app))
			return nil
		},
	}
}

func keywordsInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write the built-in keyword table to a file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			if _, err := os.Stat(path); err == nil && !force {
				return common.NewUserError(
					fmt.Sprintf("%s already exists. Use --force to overwrite.", path),
					fmt.Errorf("keyword file %s exists", path),
				)
			}

			var b strings.Builder
			b.WriteString("# gachaledger keyword table. Order is match priority.\n")
			b.WriteString("keywords:\n")
			for _, entry := range classify.DefaultEntries() {
				fmt.Fprintf(&b, "  - app: %q\n", entry.App)
				b.WriteString("    keywords:\n")
				for _, kw := range entry.Keywords {
					fmt.Fprintf(&b, "      - %q\n", kw)
				}
			}

			if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("failed to write keyword file: %w", err)
			}
			cmd.Println(cli.SuccessStyle.Render("Keyword table written to " + path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
