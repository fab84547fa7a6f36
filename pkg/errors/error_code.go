package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter ErrorCode = 100
	ErrCodeInvalidPeriod    ErrorCode = 101
	ErrCodeInvalidOperator  ErrorCode = 102
	ErrCodeMissingParameter ErrorCode = 103
	ErrCodeInvalidType      ErrorCode = 104

	// Data errors (200-299)
	ErrCodeDataNotFound    ErrorCode = 200
	ErrCodeQueryFailed     ErrorCode = 201
	ErrCodeEmptyBarSeries  ErrorCode = 202
	ErrCodeUnorderedSeries ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeIndicatorFieldUnknown  ErrorCode = 303
	ErrCodeInsufficientData       ErrorCode = 304

	// Condition tree errors (400-499)
	ErrCodeInvalidConditionTree ErrorCode = 400
	ErrCodeInvalidConditionLeaf ErrorCode = 401
	ErrCodeUnknownGroupOperator ErrorCode = 402

	// Strategy errors (500-599)
	ErrCodeStrategyLoadFailed  ErrorCode = 500
	ErrCodeStrategyConfigError ErrorCode = 501

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 600
	ErrCodeInvalidDateRange    ErrorCode = 601
	ErrCodeInvalidTakeProfit   ErrorCode = 602
	ErrCodeInvalidStopLoss     ErrorCode = 603
	ErrCodeBacktestNoTree      ErrorCode = 604
)
