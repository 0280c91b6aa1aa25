package errcode

import "fmt"

// Error represents a business error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %d, msg: %s", e.Code, e.Msg)
}

// New creates a new error with code and message
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code: e.Code,
		Msg:  fmt.Sprintf("%s: %v", e.Msg, err),
	}
}

// Common error codes
var (
	// Success
	ErrSuccess = New(0, "success")

	// Common errors (1xxx)
	ErrInvalidParam   = New(1001, "invalid parameter")
	ErrInternalServer = New(1002, "internal server error")
	ErrUnauthorized   = New(1003, "unauthorized")
	ErrForbidden      = New(1004, "forbidden")
	ErrNotFound       = New(1005, "not found")

	// Auth errors (2xxx)
	ErrTokenInvalid   = New(2001, "token invalid")
	ErrTokenExpired   = New(2002, "token expired")
	ErrTokenMissing   = New(2003, "token missing")
	ErrLoginFailed    = New(2004, "login failed")
	ErrAccountMissing = New(2005, "account not found")
	ErrAccountExists  = New(2006, "account already exists")
	ErrPasswordWrong  = New(2007, "password wrong")

	// Sync errors (3xxx)
	ErrConvNotFound   = New(3001, "conversation not found")
	ErrMsgNotFound    = New(3002, "message not found")
	ErrSyncFailed     = New(3003, "sync batch failed")
	ErrUnknownPatch   = New(3004, "unknown patch type")
	ErrSnapshotFailed = New(3005, "snapshot read failed")

	// CRM errors (4xxx)
	ErrTagNotFound      = New(4001, "tag not found")
	ErrTagExists        = New(4002, "tag already exists")
	ErrReminderNotFound = New(4003, "reminder not found")

	// WebSocket errors (5xxx)
	ErrConnOverLimit = New(5001, "connection over max limit")
	ErrConnClosed    = New(5002, "connection closed")
	ErrPushFailed    = New(5003, "push message failed")
)
