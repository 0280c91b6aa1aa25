package sdk

import "fmt"

// Error represents an API error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

// NewError creates a new error
func NewError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Common error codes
const (
	CodeSuccess = 0

	// Common errors (1xxx)
	CodeInvalidParam   = 1001
	CodeInternalServer = 1002
	CodeUnauthorized   = 1003
	CodeForbidden      = 1004
	CodeNotFound       = 1005

	// Auth errors (2xxx)
	CodeTokenInvalid   = 2001
	CodeTokenExpired   = 2002
	CodeTokenMissing   = 2003
	CodeLoginFailed    = 2004
	CodeAccountMissing = 2005
	CodeAccountExists  = 2006
	CodePasswordWrong  = 2007

	// Sync errors (3xxx)
	CodeConvNotFound   = 3001
	CodeMsgNotFound    = 3002
	CodeSyncFailed     = 3003
	CodeUnknownPatch   = 3004
	CodeSnapshotFailed = 3005

	// CRM errors (4xxx)
	CodeTagNotFound      = 4001
	CodeTagExists        = 4002
	CodeReminderNotFound = 4003
)

// Predefined errors
var (
	ErrInvalidParam   = NewError(CodeInvalidParam, "invalid parameter")
	ErrInternalServer = NewError(CodeInternalServer, "internal server error")
	ErrUnauthorized   = NewError(CodeUnauthorized, "unauthorized")
	ErrNotFound       = NewError(CodeNotFound, "not found")

	ErrTokenInvalid  = NewError(CodeTokenInvalid, "token invalid")
	ErrTokenMissing  = NewError(CodeTokenMissing, "token missing")
	ErrPasswordWrong = NewError(CodePasswordWrong, "password wrong")

	ErrConvNotFound = NewError(CodeConvNotFound, "conversation not found")
	ErrUnknownPatch = NewError(CodeUnknownPatch, "unknown patch type")

	ErrTagNotFound      = NewError(CodeTagNotFound, "tag not found")
	ErrTagExists        = NewError(CodeTagExists, "tag already exists")
	ErrReminderNotFound = NewError(CodeReminderNotFound, "reminder not found")

	// ErrSendTimeout is returned when the extension bridge does not ack a
	// send within the deadline.
	ErrSendTimeout = NewError(CodeInternalServer, "send not acknowledged in time")
)
