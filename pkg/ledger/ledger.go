package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	poderrors "github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Entry is one ledger record.
type Entry struct {
	Kind    types.Kind    `json:"kind"`
	Key     string        `json:"key"`
	Payload types.Payload `json:"payload"`
	Count   int           `json:"count"`
}

// Unit returns the identity of the entry.
func (e Entry) Unit() types.Unit {
	return types.Unit{Kind: e.Kind, Key: e.Key}
}

// record is the on-disk shape of an entry: payload fields plus count.
type record struct {
	types.Payload
	Count int `json:"count"`
}

type document struct {
	Declarations map[string]*record `json:"declarations"`
	Sources      map[string]*record `json:"sources"`
	Libraries    map[string]*record `json:"libraries"`
}

// Ledger holds the three per-kind tables of a project. It is loaded at the
// start of an operation and written back once at the end.
type Ledger struct {
	fs     types.FS
	path   string
	tables map[types.Kind]*Table
}

// Load reads the ledger at path. A missing file yields an empty ledger.
func Load(fsys types.FS, path string) (*Ledger, error) {
	l := newLedger(fsys, path)

	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, poderrors.Wrapf(err, poderrors.ErrLedgerRead, "failed to read ledger %s", path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, poderrors.Wrapf(err, poderrors.ErrLedgerRead, "failed to parse ledger %s", path)
	}

	l.tables[types.KindDeclaration].load(doc.Declarations)
	l.tables[types.KindSource].load(doc.Sources)
	l.tables[types.KindLibrary].load(doc.Libraries)

	return l, nil
}

func newLedger(fsys types.FS, path string) *Ledger {
	l := &Ledger{
		fs:     fsys,
		path:   path,
		tables: make(map[types.Kind]*Table, len(types.Kinds)),
	}
	for _, kind := range types.Kinds {
		l.tables[kind] = newTable(kind)
	}
	return l
}

// Path returns where the ledger is persisted.
func (l *Ledger) Path() string { return l.path }

// Table returns the table for kind. It panics on an unknown kind.
func (l *Ledger) Table(kind types.Kind) *Table {
	t, ok := l.tables[kind]
	if !ok {
		panic("ledger: unknown kind " + string(kind))
	}
	return t
}

// Declarations returns the declaration table.
func (l *Ledger) Declarations() *Table { return l.tables[types.KindDeclaration] }

// Sources returns the source table.
func (l *Ledger) Sources() *Table { return l.tables[types.KindSource] }

// Libraries returns the library table.
func (l *Ledger) Libraries() *Table { return l.tables[types.KindLibrary] }

// Entries returns every entry, declarations first, keys sorted within a kind.
func (l *Ledger) Entries() []Entry {
	var entries []Entry
	for _, kind := range types.Kinds {
		t := l.tables[kind]
		for _, key := range t.Keys() {
			e, _ := t.Get(key)
			entries = append(entries, e)
		}
	}
	return entries
}

// Bytes returns the serialized ledger.
func (l *Ledger) Bytes() ([]byte, error) {
	doc := document{
		Declarations: l.tables[types.KindDeclaration].dump(),
		Sources:      l.tables[types.KindSource].dump(),
		Libraries:    l.tables[types.KindLibrary].dump(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write replaces the persisted ledger with the in-memory one. The content is
// written to a sibling temp file first and renamed into place.
func (l *Ledger) Write() error {
	data, err := l.Bytes()
	if err != nil {
		return poderrors.Wrap(err, poderrors.ErrLedgerWrite, "failed to encode ledger")
	}

	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return poderrors.Wrapf(err, poderrors.ErrLedgerWrite, "failed to create directory for %s", l.path)
	}

	tmp := l.path + ".tmp"
	if err := l.fs.WriteFile(tmp, data, 0644); err != nil {
		return poderrors.Wrapf(err, poderrors.ErrLedgerWrite, "failed to write %s", tmp)
	}
	if err := l.fs.Rename(tmp, l.path); err != nil {
		_ = l.fs.Remove(tmp)
		return poderrors.Wrapf(err, poderrors.ErrLedgerWrite, "failed to replace %s", l.path)
	}
	return nil
}

// Table is the reference-counted record of one kind.
type Table struct {
	kind    types.Kind
	entries map[string]*record
}

func newTable(kind types.Kind) *Table {
	return &Table{kind: kind, entries: make(map[string]*record)}
}

func (t *Table) load(records map[string]*record) {
	for key, r := range records {
		if r == nil || r.Count <= 0 {
			continue
		}
		t.entries[key] = &record{Payload: r.Payload, Count: r.Count}
	}
}

func (t *Table) dump() map[string]*record {
	out := make(map[string]*record, len(t.entries))
	for key, r := range t.entries {
		out[key] = &record{Payload: r.Payload, Count: r.Count}
	}
	return out
}

// Kind returns the kind of units this table counts.
func (t *Table) Kind() types.Kind { return t.kind }

// Len returns the number of live entries.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the entry for key.
func (t *Table) Get(key string) (Entry, bool) {
	r, ok := t.entries[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Kind: t.kind, Key: key, Payload: r.Payload, Count: r.Count}, true
}

// Increment adds one reference to an existing entry.
func (t *Table) Increment(key string) error {
	r, ok := t.entries[key]
	if !ok {
		return poderrors.Newf(poderrors.ErrNotFound, "%s %q is not in the ledger", t.kind, key).
			WithDetail("kind", string(t.kind)).
			WithDetail("key", key)
	}
	r.Count++
	return nil
}

// Decrement drops one reference from key and returns the remaining count.
// The entry is deleted when the count reaches zero. found is false when key
// was not in the table, in which case nothing changes.
func (t *Table) Decrement(key string) (remaining int, found bool) {
	r, ok := t.entries[key]
	if !ok {
		return 0, false
	}
	r.Count--
	if r.Count <= 0 {
		delete(t.entries, key)
		return 0, true
	}
	return r.Count, true
}

// SetEntry registers key with payload and a count of one, replacing any
// existing entry.
func (t *Table) SetEntry(key string, payload types.Payload) {
	t.entries[key] = &record{Payload: payload, Count: 1}
}

// Keys returns the registered keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
