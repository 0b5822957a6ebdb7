package errors

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError. Handlers branch on these.
const (
	CodeConnectionUnavailable = "CONNECTION_UNAVAILABLE"
	CodeQueryFailed           = "QUERY_FAILED"
	CodeValidation            = "VALIDATION_ERROR"
	CodeWriteFailed           = "WRITE_FAILED"
)

// MsgConnectionUnavailable is shown to operators when the store cannot be reached.
const MsgConnectionUnavailable = "Erro de conexão com o banco de dados"

var (
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	ErrInvalidInput          = errors.New("invalid input data")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrInvalidTime           = errors.New("invalid time of day")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Unavailable(err error) *AppError {
	if err == nil {
		err = ErrConnectionUnavailable
	}
	return NewAppError(CodeConnectionUnavailable, MsgConnectionUnavailable, err)
}

func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

func QueryFailed(err error) error {
	return Wrap(CodeQueryFailed, "falha na consulta", err)
}

// WriteFailed reports a rejected insert or update. err may be nil when message
// already says everything the operator needs.
func WriteFailed(message string, err error) *AppError {
	return NewAppError(CodeWriteFailed, message, err)
}

// Wrap classifies err under code unless it already carries an AppError,
// in which case the original classification wins.
func Wrap(code, message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return NewAppError(code, message, err)
}

// CodeOf returns the AppError code in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the operator facing message for err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code == CodeQueryFailed || appErr.Code == CodeWriteFailed {
			return appErr.Error()
		}
		return appErr.Message
	}
	return err.Error()
}

func IsUnavailable(err error) bool {
	return CodeOf(err) == CodeConnectionUnavailable
}

func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}

func IsWriteFailure(err error) bool {
	return CodeOf(err) == CodeWriteFailed
}
