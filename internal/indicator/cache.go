package indicator

import (
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
)

// seriesKey identifies one cached output series. It is a comparable struct
// (kind + fixed parameter set + field) rather than a formatted string, so
// lookups cannot collide and cost no allocation.
type seriesKey struct {
	Kind   types.IndicatorType
	Params types.IndicatorParams
	Field  types.IndicatorField
}

// Cache memoizes indicator output series for a single evaluation run. The
// first request for an identity computes every output line of that indicator
// in O(n); every later request for any of its fields is a map lookup. A Cache
// is owned by exactly one run and must not be shared across runs or series.
type Cache struct {
	registry IndicatorRegistry
	series   map[seriesKey][]float64
}

// NewCache creates an empty per-run cache backed by the given registry.
func NewCache(registry IndicatorRegistry) *Cache {
	return &Cache{
		registry: registry,
		series:   make(map[seriesKey][]float64),
	}
}

// Series returns the cached output series for the referenced indicator
// field, computing and memoizing all of the indicator's fields on first use.
// An empty field in the reference selects the default "value" line.
func (c *Cache) Series(ref types.IndicatorRef, closes []float64) ([]float64, error) {
	key := seriesKey{
		Kind:   ref.Kind,
		Params: ref.Params,
		Field:  normalizeField(ref.Field),
	}

	if series, ok := c.series[key]; ok {
		return series, nil
	}

	ind, err := c.registry.GetIndicator(ref.Kind)
	if err != nil {
		return nil, err
	}

	outputs, err := ind.Compute(closes, ref.Params)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to compute %s", ref.Kind)
	}

	for field, values := range outputs {
		c.series[seriesKey{Kind: ref.Kind, Params: ref.Params, Field: field}] = values
	}

	series, ok := c.series[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeIndicatorFieldUnknown, "indicator %s has no field %s", ref.Kind, key.Field)
	}

	return series, nil
}

// Value returns the referenced indicator value at one bar index. The result
// may be the unavailable sentinel; callers check with Available.
func (c *Cache) Value(ref types.IndicatorRef, closes []float64, index int) (float64, error) {
	series, err := c.Series(ref, closes)
	if err != nil {
		return Unavailable(), err
	}

	if index < 0 || index >= len(series) {
		return Unavailable(), errors.Newf(errors.ErrCodeDataNotFound, "bar index %d out of range (series length %d)", index, len(series))
	}

	return series[index], nil
}

// Reset clears all memoized series so the cache can serve a fresh run.
func (c *Cache) Reset() {
	c.series = make(map[seriesKey][]float64)
}

func normalizeField(field types.IndicatorField) types.IndicatorField {
	if field == "" {
		return types.IndicatorFieldValue
	}

	return field
}
