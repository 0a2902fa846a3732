package shared

import (
	"fmt"
	"math/big"
)

type ErrorCode uint32

// Codes start at the custom error offset so the same numbers surface on-chain.
const (
	ErrorCodeMathOverflow ErrorCode = iota + 6000
	ErrorCodeMathUnderflow
	ErrorCodeDivisionByZero
	ErrorCodeConversion
	ErrorCodeInvalidTick
	ErrorCodeInvalidPrice
	ErrorCodeInvalidInput
	ErrorCodeInvalidParameter
	ErrorCodeInvalidWeights
	ErrorCodeStaleData
	ErrorCodeOracleInsufficientData
	ErrorCodeInsufficientTWAPDuration
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeMathOverflow:             "MathOverflow",
	ErrorCodeMathUnderflow:            "MathUnderflow",
	ErrorCodeDivisionByZero:           "DivisionByZero",
	ErrorCodeConversion:               "ConversionError",
	ErrorCodeInvalidTick:              "InvalidTick",
	ErrorCodeInvalidPrice:             "InvalidPrice",
	ErrorCodeInvalidInput:             "InvalidInput",
	ErrorCodeInvalidParameter:         "InvalidParameter",
	ErrorCodeInvalidWeights:           "InvalidWeights",
	ErrorCodeStaleData:                "StaleData",
	ErrorCodeOracleInsufficientData:   "OracleInsufficientData",
	ErrorCodeInsufficientTWAPDuration: "InsufficientTWAPDuration",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", uint32(c))
}

// Error is the engine error. Value, when set, is the offending input.
type Error struct {
	Code  ErrorCode
	Value *big.Int
}

func (e *Error) Error() string {
	if e.Value == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Value)
}

// Is matches any engine error carrying the same code, so errors.Is works
// against the sentinels regardless of the attached value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewError(code ErrorCode, value *big.Int) *Error {
	var v *big.Int
	if value != nil {
		v = new(big.Int).Set(value)
	}
	return &Error{Code: code, Value: v}
}

func NewErrorInt(code ErrorCode, value int64) *Error {
	return &Error{Code: code, Value: big.NewInt(value)}
}

var (
	ErrMathOverflow             = &Error{Code: ErrorCodeMathOverflow}
	ErrMathUnderflow            = &Error{Code: ErrorCodeMathUnderflow}
	ErrDivisionByZero           = &Error{Code: ErrorCodeDivisionByZero}
	ErrConversion               = &Error{Code: ErrorCodeConversion}
	ErrInvalidTick              = &Error{Code: ErrorCodeInvalidTick}
	ErrInvalidPrice             = &Error{Code: ErrorCodeInvalidPrice}
	ErrInvalidInput             = &Error{Code: ErrorCodeInvalidInput}
	ErrInvalidParameter         = &Error{Code: ErrorCodeInvalidParameter}
	ErrInvalidWeights           = &Error{Code: ErrorCodeInvalidWeights}
	ErrStaleData                = &Error{Code: ErrorCodeStaleData}
	ErrOracleInsufficientData   = &Error{Code: ErrorCodeOracleInsufficientData}
	ErrInsufficientTWAPDuration = &Error{Code: ErrorCodeInsufficientTWAPDuration}
)
