// Package classify resolves an app identity from the noisy title and
// publisher strings that the store exports carry.
package classify

// Entry associates one canonical app identity with the keywords that
// recognize it. Keywords are case-sensitive substrings.
type Entry struct {
	App      string
	Keywords []string
}

// Table is the editable keyword table. Entry order is match priority:
// when two apps could claim the same text, the earlier entry wins. The
// table is mutated only from the main event loop, so it carries no lock.
type Table struct {
	index   map[string]int
	entries []Entry
}

// NewTable builds a table from ordered entries. Entries repeating an app
// name are folded into the first occurrence, preserving priority.
func NewTable(entries []Entry) *Table {
	t := &Table{index: make(map[string]int)}
	for _, e := range entries {
		t.Add(e.App, e.Keywords...)
	}
	return t
}

// Entries returns the table contents in priority order. The slice is a
// copy; keyword slices are shared and must not be mutated by callers.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Add appends keywords to an app's entry, creating the entry at the end
// of the priority order if the app is new. Duplicate keywords are ignored.
func (t *Table) Add(app string, keywords ...string) {
	i, ok := t.index[app]
	if !ok {
		i = len(t.entries)
		t.index[app] = i
		t.entries = append(t.entries, Entry{App: app})
	}
	for _, kw := range keywords {
		if kw == "" || t.contains(i, kw) {
			continue
		}
		t.entries[i].Keywords = append(t.entries[i].Keywords, kw)
	}
}

// Remove deletes one keyword from an app's entry. Removing the last
// keyword removes the entry itself. Reports whether anything changed.
func (t *Table) Remove(app, keyword string) bool {
	i, ok := t.index[app]
	if !ok {
		return false
	}
	kws := t.entries[i].Keywords
	for j, kw := range kws {
		if kw == keyword {
			t.entries[i].Keywords = append(kws[:j:j], kws[j+1:]...)
			if len(t.entries[i].Keywords) == 0 {
				t.removeAt(i)
			}
			return true
		}
	}
	return false
}

// RemoveApp deletes an app's entry entirely.
func (t *Table) RemoveApp(app string) bool {
	i, ok := t.index[app]
	if !ok {
		return false
	}
	t.removeAt(i)
	return true
}

// Apps returns the app identities in priority order.
func (t *Table) Apps() []string {
	apps := make([]string, len(t.entries))
	for i, e := range t.entries {
		apps[i] = e.App
	}
	return apps
}

func (t *Table) contains(i int, keyword string) bool {
	for _, kw := range t.entries[i].Keywords {
		if kw == keyword {
			return true
		}
	}
	return false
}

func (t *Table) removeAt(i int) {
	delete(t.index, t.entries[i].App)
	t.entries = append(t.entries[:i:i], t.entries[i+1:]...)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].App] = j
	}
}
