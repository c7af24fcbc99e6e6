package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"gachaledger/internal/cli"
	"gachaledger/internal/common"
	"gachaledger/internal/config"
	"gachaledger/internal/engine"
	"gachaledger/internal/model"
	"gachaledger/internal/storage"
)

// newSession builds a fresh in-memory store and a session over it, using
// the configured keyword table.
func newSession(ctx context.Context) (*engine.Session, func(), error) {
	table, err := config.LoadKeywordTable(viper.GetString("keywords_file"))
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewMemoryStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() { _ = store.Close() }
	return engine.NewSession(store, table), cleanup, nil
}

// ingestFiles feeds the export files through the session behind a
// progress bar. Per-file failures are reported but do not abort the run;
// the command fails only when every file was rejected.
func ingestFiles(ctx context.Context, session *engine.Session, files []string) error {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Reading exports..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	results, err := session.ProcessFiles(ctx, files)
	if err != nil {
		return err
	}

	ok, count := 0, 0
	for _, res := range results {
		_ = bar.Add(1)
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, cli.WarningStyle.Render(userMessage(res.Err)))
			continue
		}
		ok++
		count += res.Count
	}
	if ok == 0 {
		return common.NewUserError(
			"None of the given files could be ingested.",
			fmt.Errorf("all %d files rejected", len(files)),
		)
	}
	fmt.Fprintln(os.Stderr, cli.InfoStyle.Render(
		fmt.Sprintf("%s purchases from %d of %d files", cli.FormatCount(count), ok, len(files))))
	return nil
}

func userMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// parseCurrency maps a flag value to a currency symbol. Symbols and the
// usual codes both work.
func parseCurrency(s string) (model.Currency, error) {
	switch s {
	case "", "₩", "KRW", "krw", "won":
		return model.Won, nil
	case "$", "USD", "usd", "dollar":
		return model.Dollar, nil
	case "¥", "JPY", "jpy", "yen":
		return model.Yen, nil
	case "€", "EUR", "eur", "euro":
		return model.Euro, nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("Unknown currency %q. Use one of ₩/KRW, $/USD, ¥/JPY, €/EUR.", s),
			fmt.Errorf("%w: currency %q", common.ErrInvalidConfig, s),
		)
	}
}
