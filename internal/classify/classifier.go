package classify

import (
	"strings"

	"gachaledger/internal/model"
)

// excludeKeywords mark records that are not app purchases at all: wallet
// top-ups and store credit. Matching records are dropped, not bucketed.
var excludeKeywords = []string{
	"Google Play 잔액 충전",
	"상당 쿠폰",
}

// Classifier maps (title, publisher) pairs to app identities using a
// keyword table. It always reads the live table, never a snapshot, so a
// table edit is visible to the next Classify call.
type Classifier struct {
	table *Table
}

// NewClassifier wraps the given table. The classifier does not own the
// table; the session that owns both drives reclassification after edits.
func NewClassifier(table *Table) *Classifier {
	return &Classifier{table: table}
}

// Classify resolves an app identity for a purchase. The publisher string
// is scanned first, the title as a fallback. The first table entry with a
// matching keyword wins; entry order is the whole tie-break policy. When
// nothing matches, the record lands in the catch-all bucket unless it
// matches the exclude list, in which case ok is false and the caller
// drops the record entirely.
func (c *Classifier) Classify(title, publisher string) (app string, ok bool) {
	if publisher != "" {
		if app, found := c.scan(publisher); found {
			return app, true
		}
	}
	if title != "" {
		if app, found := c.scan(title); found {
			return app, true
		}
	}

	for _, kw := range excludeKeywords {
		if strings.Contains(title, kw) || strings.Contains(publisher, kw) {
			return "", false
		}
	}
	return model.OtherApp, true
}

func (c *Classifier) scan(text string) (string, bool) {
	for _, entry := range c.table.entries {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.App, true
			}
		}
	}
	return "", false
}
