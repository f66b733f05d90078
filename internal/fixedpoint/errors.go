// internal/fixedpoint/errors.go
package fixedpoint

import "errors"

var (
	// ErrDivisionByZero возникает, когда делитель равен нулю
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow возникает, когда результат не помещается в целевой тип
	ErrOverflow = errors.New("numeric overflow")

	// ErrInvalidInput возникает при отрицательном или не конечном значении
	ErrInvalidInput = errors.New("invalid input")
)
