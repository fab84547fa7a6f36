package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestName() {
	suite.Equal(types.IndicatorTypeSMA, NewSMA().Name())
}

func (suite *SMATestSuite) TestFields() {
	suite.Equal([]types.IndicatorField{types.IndicatorFieldValue}, NewSMA().Fields())
}

func (suite *SMATestSuite) TestComputeValues() {
	closes := []float64{1, 2, 3, 4, 5}

	outputs, err := NewSMA().Compute(closes, types.IndicatorParams{Period: 3})
	suite.NoError(err)

	values := outputs[types.IndicatorFieldValue]
	suite.Len(values, len(closes))

	// Window has not filled for the first two bars
	suite.False(Available(values[0]))
	suite.False(Available(values[1]))

	suite.InDelta(2.0, values[2], 1e-9)
	suite.InDelta(3.0, values[3], 1e-9)
	suite.InDelta(4.0, values[4], 1e-9)
}

func (suite *SMATestSuite) TestComputeDefaultPeriod() {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = float64(i + 1)
	}

	outputs, err := NewSMA().Compute(closes, types.IndicatorParams{})
	suite.NoError(err)

	values := outputs[types.IndicatorFieldValue]
	suite.False(Available(values[18]))
	// Mean of 1..20 at index 19 with the default period of 20
	suite.InDelta(10.5, values[19], 1e-9)
}

func (suite *SMATestSuite) TestComputeShortSeries() {
	outputs, err := NewSMA().Compute([]float64{1, 2}, types.IndicatorParams{Period: 5})
	suite.NoError(err)

	for _, v := range outputs[types.IndicatorFieldValue] {
		suite.False(Available(v))
	}
}

func (suite *SMATestSuite) TestComputeNegativePeriod() {
	_, err := NewSMA().Compute([]float64{1, 2, 3}, types.IndicatorParams{Period: -1})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
