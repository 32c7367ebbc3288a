package history

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxtools/lotcalc/market"
	"github.com/fxtools/lotcalc/risk"
)

func testEntry(symbol string, lot float64) Entry {
	in := risk.Inputs{
		AccountCurrency: "USD",
		AccountSize:     10_000,
		Leverage:        500,
		RiskType:        risk.RiskPercent,
		RiskValue:       1,
		Instrument:      market.Instruments[symbol],
		EntryPrice:      1.0700,
		StopLossPrice:   1.0650,
		Direction:       "buy",
	}
	res := risk.Result{LotSize: lot, Category: risk.LotMini}
	return NewEntry(in, res)
}

func newFileHistory(t *testing.T) (*History, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.json")
	h, err := Open(NewJSONFile(path), nil)
	require.NoError(t, err)
	return h, path
}

func TestHistoryAddAndReload(t *testing.T) {
	t.Parallel()

	h, path := newFileHistory(t)

	e := testEntry("EUR/USD", 0.20)
	require.NoError(t, h.Add(e))

	reloaded, err := Open(NewJSONFile(path), nil)
	require.NoError(t, err)

	entries := reloaded.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, "EUR/USD", entries[0].Inputs.Instrument.Symbol)
	assert.InDelta(t, 0.20, entries[0].Result.LotSize, 1e-12)
	assert.WithinDuration(t, e.Time, entries[0].Time, time.Second)
}

func TestHistoryNewestFirstAndCapped(t *testing.T) {
	t.Parallel()

	h, _ := newFileHistory(t)

	var last Entry
	for i := 0; i < MaxEntries+5; i++ {
		last = testEntry("EUR/USD", float64(i))
		require.NoError(t, h.Add(last))
	}

	entries := h.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, last.ID, entries[0].ID, "newest first")
	// The five oldest lots (0..4) were trimmed.
	assert.InDelta(t, 5.0, entries[MaxEntries-1].Result.LotSize, 1e-12)
}

func TestHistoryCorruptFileResets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	h, err := Open(NewJSONFile(path), nil)
	require.NoError(t, err, "corruption is non-fatal")
	assert.Empty(t, h.Entries())

	// And the store works again after the reset.
	require.NoError(t, h.Add(testEntry("EUR/USD", 0.2)))
	assert.Len(t, h.Entries(), 1)
}

func TestHistoryClear(t *testing.T) {
	t.Parallel()

	h, path := newFileHistory(t)
	require.NoError(t, h.Add(testEntry("EUR/USD", 0.2)))
	require.NoError(t, h.Clear())
	assert.Empty(t, h.Entries())

	reloaded, err := Open(NewJSONFile(path), nil)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Entries())
}

func TestHistoryZeroLeverageEntryPersists(t *testing.T) {
	t.Parallel()

	// Zero leverage yields an infinite margin, which is still a valid
	// positive-lot result and must be archivable by both backends.
	e := testEntry("EUR/USD", 0.20)
	e.Inputs.Leverage = 0
	e.Result.MarginRequired = math.Inf(1)

	jsonPath := filepath.Join(t.TempDir(), "history.json")
	h, err := Open(NewJSONFile(jsonPath), nil)
	require.NoError(t, err)
	require.NoError(t, h.Add(e))

	reloaded, err := Open(NewJSONFile(jsonPath), nil)
	require.NoError(t, err)
	entries := reloaded.Entries()
	require.Len(t, entries, 1)
	assert.True(t, math.IsInf(entries[0].Result.MarginRequired, 1))
	assert.InDelta(t, 0.20, entries[0].Result.LotSize, 1e-12)

	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	hs, err := Open(s, nil)
	require.NoError(t, err)
	require.NoError(t, hs.Add(e))
	require.NoError(t, hs.Close())

	s2, err := NewSQLite(dbPath)
	require.NoError(t, err)
	reloadedDB, err := Open(s2, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reloadedDB.Close() })

	entries = reloadedDB.Entries()
	require.Len(t, entries, 1)
	assert.True(t, math.IsInf(entries[0].Result.MarginRequired, 1))
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	h, err := Open(s, nil)
	require.NoError(t, err)

	var want []string
	for i := 0; i < 3; i++ {
		e := testEntry("XAU/USD", 0.1*float64(i+1))
		// Spread the timestamps so created_at ordering is decisive.
		e.Time = time.Date(2026, 8, 28, 10, i, 0, 0, time.UTC)
		e.ID = fmt.Sprintf("ENTRY-%d", i)
		require.NoError(t, h.Add(e))
		want = append([]string{e.ID}, want...)
	}
	require.NoError(t, h.Close())

	s2, err := NewSQLite(path)
	require.NoError(t, err)
	reloaded, err := Open(s2, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reloaded.Close() })

	entries := reloaded.Entries()
	require.Len(t, entries, 3)
	for i, id := range want {
		assert.Equal(t, id, entries[i].ID)
	}
	assert.Equal(t, "XAU/USD", entries[0].Inputs.Instrument.Symbol)
}

func TestSQLiteCorruptSnapshotResets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO history (id, created_at, snapshot) VALUES ('X', ?, 'garbage')`,
		time.Now().UTC())
	require.NoError(t, err)

	h, err := Open(s, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	assert.Empty(t, h.Entries(), "corrupted history is discarded wholesale")
}
