package usecase

import (
	"errors"
	"fmt"
)

// Usecaseが返すエラーの分類。HTTPへの変換はhandler側のwriteErrorだけが行う。
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "not_found"
	CodeInsufficientStock ErrorCode = "insufficient_stock"
	CodeAlreadyBilled     ErrorCode = "already_billed"
	CodeEmptyBill         ErrorCode = "empty_bill"
	CodeInvalidArgument   ErrorCode = "invalid_argument"
	CodeConflict          ErrorCode = "conflict"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeInternal          ErrorCode = "internal"
)

type AppError struct {
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) error {
	return &AppError{Code: code, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

func errNotFound(msg string) error { return NewAppError(CodeNotFound, msg) }
func errInsufficientStock(msg string) error { return NewAppError(CodeInsufficientStock, msg) }
func errAlreadyBilled(msg string) error { return NewAppError(CodeAlreadyBilled, msg) }
func errEmptyBill(msg string) error { return NewAppError(CodeEmptyBill, msg) }
func errInvalidArgument(msg string) error { return NewAppError(CodeInvalidArgument, msg) }
func errConflict(msg string) error { return NewAppError(CodeConflict, msg) }
func errUnauthorized(msg string) error { return NewAppError(CodeUnauthorized, msg) }
func errInternal(msg string) error { return NewAppError(CodeInternal, msg) }
