// Package engine orchestrates a purchase-history session: it ingests
// export files, runs them through the platform parsers and keeps the
// combined store in sync with the keyword table.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"gachaledger/internal/appstore"
	"gachaledger/internal/classify"
	"gachaledger/internal/common"
	"gachaledger/internal/googleplay"
	"gachaledger/internal/model"
	"gachaledger/internal/service"
)

// Format identifies which platform parser handles an export file.
type Format string

// Supported export formats.
const (
	FormatGooglePlay Format = "googleplay"
	FormatAppStore   Format = "appstore"
)

// source is one ingested export file, retained verbatim so the session
// can rebuild the store after a keyword change.
type source struct {
	name   string
	format Format
	data   []byte
}

// FileResult reports the outcome of ingesting a single file. Err is set
// when the file was rejected; the rest of the batch is unaffected.
type FileResult struct {
	Err   error
	Name  string
	Count int
}

// Session owns the mutable state of one analysis run: the raw export
// files, the keyword table and the combined store. Every mutation of the
// table rebuilds the store from the retained raw files, so reports always
// reflect the current keywords.
type Session struct {
	store   service.Storage
	table   *classify.Table
	sources []source
	mu      sync.Mutex
}

// NewSession creates a session over the given store and keyword table.
// The store must already be migrated.
func NewSession(store service.Storage, table *classify.Table) *Session {
	return &Session{store: store, table: table}
}

// Store exposes the session's combined store for the report layer.
func (s *Session) Store() service.Storage {
	return s.store
}

// DetectFormat picks a parser from the file extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatGooglePlay, nil
	case ".html", ".htm":
		return FormatAppStore, nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("Unsupported file type %q. Provide a Google Play order export (.json) or an App Store invoice page (.html).", filepath.Ext(name)),
			fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, name),
		)
	}
}

// ProcessFiles ingests the given export files. Files are read
// concurrently; parsing and merging happen in argument order so the
// store's arrival order stays deterministic. A file that fails to read
// or parse is reported in its FileResult and leaves the store exactly
// as it was; the other files still go through.
func (s *Session) ProcessFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	contents := make([][]byte, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	readErrs := make([]error, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				readErrs[i] = common.NewUserError(
					fmt.Sprintf("Could not read %s.", path),
					fmt.Errorf("failed to read %s: %w", path, err),
				)
				return nil
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]FileResult, len(paths))
	for i, path := range paths {
		results[i] = FileResult{Name: path}
		if readErrs[i] != nil {
			results[i].Err = readErrs[i]
			continue
		}
		count, err := s.ingest(ctx, path, contents[i])
		if err != nil {
			common.LogError(err, "Rejected export file", common.Fields{"file": path})
			results[i].Err = err
			continue
		}
		results[i].Count = count
	}
	return results, nil
}

// ingest parses one file and merges its transactions. The raw bytes are
// retained only after the whole file parsed cleanly.
func (s *Session) ingest(ctx context.Context, name string, data []byte) (int, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return 0, err
	}

	transactions, err := s.parse(format, data)
	if err != nil {
		return 0, common.NewUserError(
			fmt.Sprintf("Could not parse %s. The file does not look like a valid export.", name),
			fmt.Errorf("%w: %s: %v", common.ErrMalformedFile, name, err),
		)
	}

	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		return 0, fmt.Errorf("failed to save transactions from %s: %w", name, err)
	}

	s.sources = append(s.sources, source{name: name, format: format, data: data})
	slog.Info("Ingested export file",
		"file", name,
		"format", format,
		"transactions", len(transactions))
	return len(transactions), nil
}

func (s *Session) parse(format Format, data []byte) ([]model.Transaction, error) {
	classifier := classify.NewClassifier(s.table)
	switch format {
	case FormatGooglePlay:
		return googleplay.NewParser(classifier).ParseFile(bytes.NewReader(data))
	case FormatAppStore:
		return appstore.NewParser(classifier).ParseFile(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}
}

// AddKeyword maps a keyword to an app and rebuilds the store so already
// ingested files pick up the new classification.
func (s *Session) AddKeyword(ctx context.Context, app, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Add(app, keyword)
	return s.reprocess(ctx)
}

// RemoveKeyword drops one of an app's keywords and rebuilds the store.
func (s *Session) RemoveKeyword(ctx context.Context, app, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.table.Remove(app, keyword) {
		return common.NewUserError(
			fmt.Sprintf("Keyword %q is not in the table for %q.", keyword, app),
			fmt.Errorf("%w: no keyword %q for %q", common.ErrUnknownApp, keyword, app),
		)
	}
	return s.reprocess(ctx)
}

// RemoveApp drops an app and all its keywords, then rebuilds the store.
func (s *Session) RemoveApp(ctx context.Context, app string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.table.RemoveApp(app) {
		return common.NewUserError(
			fmt.Sprintf("App %q is not in the table.", app),
			fmt.Errorf("%w: %s", common.ErrUnknownApp, app),
		)
	}
	return s.reprocess(ctx)
}

// SetTable swaps the whole keyword table and rebuilds the store.
func (s *Session) SetTable(ctx context.Context, table *classify.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table
	return s.reprocess(ctx)
}

// reprocess clears the store and replays every retained source through
// the parsers with the current table. Callers hold s.mu.
func (s *Session) reprocess(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}

	for _, src := range s.sources {
		transactions, err := s.parse(src.format, src.data)
		if err != nil {
			return fmt.Errorf("failed to reparse %s: %w", src.name, err)
		}
		if err := s.store.SaveTransactions(ctx, transactions); err != nil {
			return fmt.Errorf("failed to save transactions from %s: %w", src.name, err)
		}
	}

	slog.Info("Rebuilt store after keyword change", "sources", len(s.sources))
	return nil
}

// Reset drops the retained sources and empties the store. The keyword
// table survives a reset.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = nil
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// TransactionCount reports how many transactions the session holds.
func (s *Session) TransactionCount(ctx context.Context) (int, error) {
	return s.store.TransactionCount(ctx)
}

// RequireTransactions returns ErrNoTransactions when the store is empty.
// Reports over an empty session are not an error for the session itself,
// only for the commands that need something to show.
func (s *Session) RequireTransactions(ctx context.Context) error {
	count, err := s.store.TransactionCount(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return common.NewUserError(
			"No transactions ingested yet. Run analyze with at least one export file.",
			common.ErrNoTransactions,
		)
	}
	return nil
}
