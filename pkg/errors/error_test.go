package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNew() {
	err := New(ErrCodeInvalidParameter, "bad parameter")

	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("[100] bad parameter", err.Error())
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestNewf() {
	err := Newf(ErrCodeIndicatorNotFound, "indicator %s not registered", "rsi")
	suite.Equal("[300] indicator rsi not registered", err.Error())
}

func (suite *ErrorTestSuite) TestWrapPreservesCause() {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)

	suite.Equal(cause, err.Unwrap())
	suite.Contains(err.Error(), "disk on fire")
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeEmptyBarSeries, GetCode(New(ErrCodeEmptyBarSeries, "no bars")))
	suite.Equal(ErrCodeUnknown, GetCode(fmt.Errorf("plain error")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestGetCodeThroughWrapping() {
	inner := New(ErrCodeInvalidPeriod, "period must be positive")
	outer := fmt.Errorf("computing sma: %w", inner)

	suite.Equal(ErrCodeInvalidPeriod, GetCode(outer))
	suite.True(HasCode(outer, ErrCodeInvalidPeriod))
	suite.False(HasCode(outer, ErrCodeInvalidParameter))
}

func (suite *ErrorTestSuite) TestAs() {
	var target *Error

	err := fmt.Errorf("wrapped: %w", New(ErrCodeStrategyLoadFailed, "cannot load"))
	suite.True(As(err, &target))
	suite.Equal(ErrCodeStrategyLoadFailed, target.Code)
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(14, 5, "rsi window has not filled")

	suite.Equal("rsi window has not filled", err.Error())
	suite.Equal(14, err.Required)
	suite.Equal(5, err.Actual)

	wrapped := fmt.Errorf("compute: %w", err)
	suite.True(IsInsufficientDataError(wrapped))
	suite.False(IsInsufficientDataError(fmt.Errorf("plain")))
}
