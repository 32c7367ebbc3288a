// history/history.go
package history

import (
	"time"

	"go.uber.org/zap"

	"github.com/fxtools/lotcalc/pkg/id"
	"github.com/fxtools/lotcalc/risk"
)

// MaxEntries bounds the retained history, newest first.
const MaxEntries = 10

// Entry is an immutable snapshot of one calculation: the full input
// set plus its result.
type Entry struct {
	ID     string      `json:"id"`
	Time   time.Time   `json:"time"`
	Inputs risk.Inputs `json:"inputs"`
	Result risk.Result `json:"result"`
}

// NewEntry stamps a snapshot with a ULID and the current time.
func NewEntry(in risk.Inputs, res risk.Result) Entry {
	return Entry{
		ID:     id.New(),
		Time:   time.Now().UTC(),
		Inputs: in,
		Result: res,
	}
}

// Store persists the whole history list as one unit. Load returns the
// persisted entries newest first; Save rewrites them wholesale.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Close() error
}

// History is the bounded, newest-first calculation history. Every
// mutation is written through to the store immediately.
type History struct {
	store   Store
	entries []Entry
	log     *zap.Logger
}

// Open loads persisted history from store. Corrupted data is not
// recovered partially: the history resets to empty with a notice.
func Open(store Store, log *zap.Logger) (*History, error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := store.Load()
	if err != nil {
		log.Warn("discarding corrupted calculation history", zap.Error(err))
		entries = nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	return &History{store: store, entries: entries, log: log}, nil
}

// Add prepends an entry, trims to MaxEntries and persists.
func (h *History) Add(e Entry) error {
	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > MaxEntries {
		h.entries = h.entries[:MaxEntries]
	}
	return h.store.Save(h.entries)
}

// Entries returns the history newest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear empties the history and persists the empty list.
func (h *History) Clear() error {
	h.entries = nil
	return h.store.Save(nil)
}

func (h *History) Close() error {
	return h.store.Close()
}
