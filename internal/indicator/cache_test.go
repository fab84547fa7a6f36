package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// countingIndicator wraps SMA and records how many times Compute runs.
type countingIndicator struct {
	inner    Indicator
	computes int
}

func (c *countingIndicator) Name() types.IndicatorType {
	return c.inner.Name()
}

func (c *countingIndicator) Fields() []types.IndicatorField {
	return c.inner.Fields()
}

func (c *countingIndicator) Compute(closes []float64, params types.IndicatorParams) (map[types.IndicatorField][]float64, error) {
	c.computes++
	return c.inner.Compute(closes, params)
}

type CacheTestSuite struct {
	suite.Suite

	counting *countingIndicator
	cache    *Cache
	closes   []float64
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) SetupTest() {
	suite.counting = &countingIndicator{inner: NewSMA()}

	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(suite.counting))
	suite.NoError(registry.RegisterIndicator(NewMACD()))

	suite.cache = NewCache(registry)
	suite.closes = []float64{1, 2, 3, 4, 5, 6, 7, 8}
}

func (suite *CacheTestSuite) TestSeriesMemoized() {
	ref := types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}

	first, err := suite.cache.Series(ref, suite.closes)
	suite.NoError(err)

	second, err := suite.cache.Series(ref, suite.closes)
	suite.NoError(err)

	suite.Equal(1, suite.counting.computes)
	suite.Equal(first, second)
}

func (suite *CacheTestSuite) TestDistinctParamsComputeSeparately() {
	_, err := suite.cache.Series(types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}, suite.closes)
	suite.NoError(err)

	_, err = suite.cache.Series(types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 5}}, suite.closes)
	suite.NoError(err)

	suite.Equal(2, suite.counting.computes)
}

func (suite *CacheTestSuite) TestAllFieldsMemoizedTogether() {
	params := types.IndicatorParams{FastPeriod: 2, SlowPeriod: 4, SignalPeriod: 2}

	_, err := suite.cache.Series(types.IndicatorRef{Kind: types.IndicatorTypeMACD, Params: params, Field: types.IndicatorFieldMACD}, suite.closes)
	suite.NoError(err)

	// The signal line was memoized by the first compute
	_, err = suite.cache.Series(types.IndicatorRef{Kind: types.IndicatorTypeMACD, Params: params, Field: types.IndicatorFieldSignal}, suite.closes)
	suite.NoError(err)
}

func (suite *CacheTestSuite) TestEmptyFieldSelectsValue() {
	ref := types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}

	_, err := suite.cache.Series(ref, suite.closes)
	suite.NoError(err)

	ref.Field = types.IndicatorFieldValue
	_, err = suite.cache.Series(ref, suite.closes)
	suite.NoError(err)

	suite.Equal(1, suite.counting.computes)
}

func (suite *CacheTestSuite) TestUnknownKind() {
	_, err := suite.cache.Series(types.IndicatorRef{Kind: types.IndicatorType("vwap")}, suite.closes)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *CacheTestSuite) TestUnknownField() {
	ref := types.IndicatorRef{
		Kind:   types.IndicatorTypeSMA,
		Params: types.IndicatorParams{Period: 3},
		Field:  types.IndicatorFieldUpper,
	}

	_, err := suite.cache.Series(ref, suite.closes)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorFieldUnknown))
}

func (suite *CacheTestSuite) TestValue() {
	ref := types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}

	value, err := suite.cache.Value(ref, suite.closes, 2)
	suite.NoError(err)
	suite.InDelta(2.0, value, 1e-9)

	value, err = suite.cache.Value(ref, suite.closes, 0)
	suite.NoError(err)
	suite.False(Available(value))
}

func (suite *CacheTestSuite) TestValueOutOfRange() {
	ref := types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}

	_, err := suite.cache.Value(ref, suite.closes, len(suite.closes))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *CacheTestSuite) TestReset() {
	ref := types.IndicatorRef{Kind: types.IndicatorTypeSMA, Params: types.IndicatorParams{Period: 3}}

	_, err := suite.cache.Series(ref, suite.closes)
	suite.NoError(err)

	suite.cache.Reset()

	_, err = suite.cache.Series(ref, suite.closes)
	suite.NoError(err)
	suite.Equal(2, suite.counting.computes)
}
