// pricing/sync.go
package pricing

import "math"

// Anchor records which of the price/pips pair the user edited last.
// That field is the source of truth; the other is derived from it.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorPrice
	AnchorPips
)

// Context carries the surrounding form state a leg needs to derive
// one field from the other.
type Context struct {
	Entry    float64
	EntrySet bool
	Symbol   string
	Dir      Direction
	Leg      Leg
	Resolver Resolver
}

func (c Context) entryValid() bool {
	return c.EntrySet && validPrice(c.Entry)
}

// SyncState keeps one leg's displayed price, displayed pip distance
// and the effective price fed to the calculation engine consistent
// with whichever field is currently anchored.
//
// Invariant: Effective always equals the anchored price, or the price
// derived from the anchored pip distance. It is never taken from the
// non-anchored field.
type SyncState struct {
	Price        float64
	PriceSet     bool
	Pips         float64
	PipsSet      bool
	Effective    float64
	EffectiveSet bool
	Anchor       Anchor
}

// Reset returns the leg to Uninitialized with all fields cleared.
func (s *SyncState) Reset() {
	*s = SyncState{}
}

// SetPrice records a user edit of the price field. A non-positive or
// NaN value clears the leg entirely.
func (s *SyncState) SetPrice(v float64, ctx Context) {
	if !validPrice(v) {
		s.Reset()
		return
	}

	s.Anchor = AnchorPrice
	s.Price, s.PriceSet = v, true
	s.Effective, s.EffectiveSet = v, true
	s.derivePips(ctx)
}

// SetPips records a user edit of the pips field. Negative or NaN
// clears the leg. The pips value is kept as anchor even when the
// entry price is currently invalid; the price side stays cleared
// until a Refresh with a valid entry re-derives it.
func (s *SyncState) SetPips(v float64, ctx Context) {
	if math.IsNaN(v) || v < 0 {
		s.Reset()
		return
	}

	s.Anchor = AnchorPips
	s.Pips, s.PipsSet = v, true
	s.derivePrice(ctx)
}

// Refresh re-runs the derivation after a change to entry price,
// instrument or direction. The anchor stays fixed; only the derived
// field moves. A missing anchor source resets the leg.
func (s *SyncState) Refresh(ctx Context) {
	switch s.Anchor {
	case AnchorPrice:
		if !s.PriceSet {
			s.Reset()
			return
		}
		s.Effective, s.EffectiveSet = s.Price, true
		s.derivePips(ctx)
	case AnchorPips:
		if !s.PipsSet {
			s.Reset()
			return
		}
		s.derivePrice(ctx)
	}
}

func (s *SyncState) derivePips(ctx Context) {
	if !ctx.entryValid() {
		s.Pips, s.PipsSet = 0, false
		return
	}
	pips, ok := ctx.Resolver.PipsFromPrices(ctx.Entry, s.Price, ctx.Symbol)
	if !ok {
		s.Pips, s.PipsSet = 0, false
		return
	}
	s.Pips, s.PipsSet = pips, true
}

func (s *SyncState) derivePrice(ctx Context) {
	if !ctx.entryValid() {
		s.Price, s.PriceSet = 0, false
		s.Effective, s.EffectiveSet = 0, false
		return
	}
	px, ok := ctx.Resolver.PriceFromPips(ctx.Entry, s.Pips, ctx.Symbol, ctx.Dir, ctx.Leg)
	if !ok {
		s.Price, s.PriceSet = 0, false
		s.Effective, s.EffectiveSet = 0, false
		return
	}
	s.Price, s.PriceSet = px, true
	s.Effective, s.EffectiveSet = px, true
}
