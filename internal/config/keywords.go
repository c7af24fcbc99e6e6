package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"gachaledger/internal/classify"
	"gachaledger/internal/common"
)

// keywordEntry is the on-disk shape of one keyword table row. The file
// holds an ordered list because row order is the match priority.
type keywordEntry struct {
	App      string   `mapstructure:"app"`
	Keywords []string `mapstructure:"keywords"`
}

// LoadKeywordTable builds the classification table. Precedence:
// 1. the explicit file path, when given
// 2. a `keywords` list in the main Viper config
// 3. the built-in table
func LoadKeywordTable(path string) (*classify.Table, error) {
	if path != "" {
		return loadKeywordFile(ExpandPath(path))
	}

	var entries []keywordEntry
	if err := viper.UnmarshalKey("keywords", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode keywords config: %w", err)
	}
	if len(entries) > 0 {
		return buildTable(entries)
	}

	return classify.DefaultTable(), nil
}

func loadKeywordFile(path string) (*classify.Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewUserError(
				fmt.Sprintf("Keyword file %s does not exist.", path),
				fmt.Errorf("failed to read keyword file: %w", err),
			)
		}
		return nil, fmt.Errorf("failed to read keyword file %s: %w", path, err)
	}

	var entries []keywordEntry
	if err := v.UnmarshalKey("keywords", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode keyword file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("Keyword file %s has no entries under the keywords key.", path),
			fmt.Errorf("%w: empty keyword file %s", common.ErrInvalidConfig, path),
		)
	}
	return buildTable(entries)
}

func buildTable(entries []keywordEntry) (*classify.Table, error) {
	converted := make([]classify.Entry, 0, len(entries))
	for _, e := range entries {
		if e.App == "" {
			return nil, common.NewUserError(
				"A keyword entry is missing its app name.",
				fmt.Errorf("%w: keyword entry without app", common.ErrInvalidConfig),
			)
		}
		converted = append(converted, classify.Entry{App: e.App, Keywords: e.Keywords})
	}
	return classify.NewTable(converted), nil
}
