// series_metadata.go - insertion-ordered string->string metadata mapping

package chartgo

import "github.com/lucasmanoguerra/chart-go/core"

// SeriesMetadata is an insertion-ordered string->string mapping, matching
// spec.md §3's ownership note ("series metadata is an insertion-ordered
// mapping").
type SeriesMetadata struct {
	keys   []string
	values map[string]string
}

// NewSeriesMetadata builds an empty metadata mapping.
func NewSeriesMetadata() *SeriesMetadata {
	return &SeriesMetadata{values: make(map[string]string)}
}

// Set inserts or updates a key. Re-setting an existing key preserves its
// original insertion position.
func (m *SeriesMetadata) Set(key, value string) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *SeriesMetadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes a key, if present.
func (m *SeriesMetadata) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns keys in insertion order.
func (m *SeriesMetadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *SeriesMetadata) Len() int {
	return len(m.keys)
}

// CandleStyleOverride carries optional per-bar style overrides for the
// candlestick series. A zero value with Present=false means "no override
// at this index".
type CandleStyleOverride struct {
	Present     bool
	BullColor   *core.Color
	BearColor   *core.Color
	BorderColor *core.Color
}

// CandleStyleOverrides is a sparse, index-aligned parallel sequence: index
// i describes the override (if any) for candles[i]. Modeling it this way
// (rather than embedding an optional field in OhlcBar) keeps the
// projection hot path cache-friendly, per spec.md §9's design note.
type CandleStyleOverrides struct {
	entries map[int]CandleStyleOverride
}

// NewCandleStyleOverrides builds an empty sparse override sequence.
func NewCandleStyleOverrides() *CandleStyleOverrides {
	return &CandleStyleOverrides{entries: make(map[int]CandleStyleOverride)}
}

// Set stores the override for candle index i.
func (o *CandleStyleOverrides) Set(i int, override CandleStyleOverride) {
	override.Present = true
	o.entries[i] = override
}

// Clear removes the override for candle index i, if any.
func (o *CandleStyleOverrides) Clear(i int) {
	delete(o.entries, i)
}

// At returns the override for candle index i, or a zero value with
// Present=false.
func (o *CandleStyleOverrides) At(i int) CandleStyleOverride {
	return o.entries[i]
}

// Reindex drops any overrides whose index is >= newLen, used when the
// candle sequence shrinks (e.g. a full replace with fewer bars).
func (o *CandleStyleOverrides) Reindex(newLen int) {
	for i := range o.entries {
		if i >= newLen {
			delete(o.entries, i)
		}
	}
}
