package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxRateStore is an append-only list of slab rate rows. Effective dates
// are compared at day precision.
type TaxRateStore struct {
	mu   sync.RWMutex
	rows []domain.TaxSlabRate
}

var _ domain.TaxRateRepository = (*TaxRateStore)(nil)

func NewTaxRateStore() *TaxRateStore {
	return &TaxRateStore{}
}

func (s *TaxRateStore) Latest(ctx context.Context, slab decimal.Decimal, asOf time.Time) (domain.TaxSlabRate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best, ok := s.latest(slab, dateOf(asOf))
	return best, ok, nil
}

func (s *TaxRateStore) ListCurrent(ctx context.Context, asOf time.Time) ([]domain.TaxSlabRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := dateOf(asOf)
	seen := make(map[string]bool)
	var out []domain.TaxSlabRate
	for _, row := range s.rows {
		key := row.Slab.String()
		if seen[key] {
			continue
		}
		if best, ok := s.latest(row.Slab, day); ok {
			seen[key] = true
			out = append(out, best)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slab.LessThan(out[j].Slab) })
	return out, nil
}

func (s *TaxRateStore) Append(ctx context.Context, rate domain.TaxSlabRate) error {
	rate.EffectiveFrom = dateOf(rate.EffectiveFrom)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Slab.Equal(rate.Slab) && row.EffectiveFrom.Equal(rate.EffectiveFrom) {
			return domain.Conflict("memory.tax_rate.append", "a rate for this slab and date already exists")
		}
	}
	s.rows = append(s.rows, rate)
	return nil
}

func (s *TaxRateStore) latest(slab decimal.Decimal, day time.Time) (domain.TaxSlabRate, bool) {
	var best domain.TaxSlabRate
	found := false
	for _, row := range s.rows {
		if !row.Slab.Equal(slab) || row.EffectiveFrom.After(day) {
			continue
		}
		if !found || row.EffectiveFrom.After(best.EffectiveFrom) {
			best, found = row, true
		}
	}
	return best, found
}

// dateOf drops the clock part, keeping the calendar date of t.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
